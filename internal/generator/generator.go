// Package generator renders firmware sources from a hardware description.
package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KevinKickass/hwdefs/internal/hwdef"
	"github.com/KevinKickass/hwdefs/internal/index"
	"github.com/KevinKickass/hwdefs/internal/labels"
	"github.com/KevinKickass/hwdefs/internal/legacy"
	"github.com/KevinKickass/hwdefs/internal/render"
	"github.com/KevinKickass/hwdefs/internal/types"
	"go.uber.org/zap"
)

// Context keys added next to the top-level fields of the description.
const (
	KeyADCIndex     = "adc_index"
	KeyADCGPIOs     = "adc_gpios"
	KeySwitchGPIOs  = "switch_gpios"
	KeyKeyGPIOs     = "key_gpios"
	KeyTrimGPIOs    = "trim_gpios"
	KeyLegacyInputs = "legacy_inputs"
	KeyMainLabels   = "main_labels"
)

type Generator struct {
	loader   *hwdef.Loader
	resolver legacy.Resolver
	labels   labels.Table
	engine   *render.Engine
	logger   *zap.Logger
}

func New(
	loader *hwdef.Loader,
	resolver legacy.Resolver,
	labelTable labels.Table,
	engine *render.Engine,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		loader:   loader,
		resolver: resolver,
		labels:   labelTable,
		engine:   engine,
		logger:   logger,
	}
}

// Generate renders the template at templatePath against the hardware
// description at jsonPath and writes the result to w in a single write.
// Nothing is written when any step fails.
func (g *Generator) Generate(jsonPath, templatePath, target string, w io.Writer) error {
	data, err := g.Context(jsonPath, target)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := g.engine.Compile(filepath.Base(templatePath), string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", templatePath, err)
	}

	out, err := g.engine.Execute(tmpl, data)
	if err != nil {
		return fmt.Errorf("%s: %w", templatePath, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	g.logger.Info("Source generated",
		zap.String("hwdef", jsonPath),
		zap.String("template", templatePath),
		zap.String("target", target),
		zap.Int("bytes", len(out)))

	return nil
}

// Context loads the description at jsonPath and returns the data a
// template is rendered against.
func (g *Generator) Context(jsonPath, target string) (map[string]any, error) {
	desc, err := g.loader.Load(jsonPath)
	if err != nil {
		return nil, err
	}

	return g.BuildContext(desc, target)
}

// BuildContext merges the description fields with the derived indices,
// the legacy inputs of target and the label table. A derived key that
// shadows a description field is rejected.
func (g *Generator) BuildContext(desc *types.Description, target string) (map[string]any, error) {
	adcIndex, err := index.BuildADCIndex(desc.ADCInputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build ADC index: %w", err)
	}

	adcGPIOs, err := index.BuildADCGPIOPortIndex(desc.ADCInputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build ADC port index: %w", err)
	}

	switchGPIOs, err := index.BuildSwitchGPIOPortIndex(desc.Switches)
	if err != nil {
		return nil, fmt.Errorf("failed to build switch port index: %w", err)
	}

	keyGPIOs, err := index.BuildKeyGPIOPortIndex(desc.Keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build key port index: %w", err)
	}

	trimGPIOs, err := index.BuildTrimGPIOPortIndex(desc.Trims)
	if err != nil {
		return nil, fmt.Errorf("failed to build trim port index: %w", err)
	}

	legacyInputs := g.resolver.InputsByTarget(target)
	if len(legacyInputs) == 0 {
		g.logger.Info("No legacy inputs for target", zap.String("target", target))
	}

	g.logger.Debug("Indices built",
		zap.Int("adc_names", len(adcIndex)),
		zap.Int("adc_ports", len(adcGPIOs)),
		zap.Int("switch_ports", len(switchGPIOs)),
		zap.Int("key_ports", len(keyGPIOs)),
		zap.Int("trim_ports", len(trimGPIOs)),
		zap.Int("legacy_inputs", len(legacyInputs)))

	derived := []struct {
		key   string
		value any
	}{
		{KeyADCIndex, adcIndex},
		{KeyADCGPIOs, adcGPIOs},
		{KeySwitchGPIOs, switchGPIOs},
		{KeyKeyGPIOs, keyGPIOs},
		{KeyTrimGPIOs, trimGPIOs},
		{KeyLegacyInputs, legacyInputs.Values()},
		{KeyMainLabels, g.labels.Values()},
	}

	ctx := make(map[string]any, len(desc.Fields)+len(derived)+len(types.Sections))
	for k, v := range desc.Fields {
		ctx[k] = v
	}

	// absent sections render like empty ones
	for _, section := range types.Sections {
		if ctx[section] == nil {
			ctx[section] = []any{}
		}
	}

	for _, d := range derived {
		if _, exists := ctx[d.key]; exists {
			return nil, &types.ContextKeyError{Key: d.key}
		}
		ctx[d.key] = d.value
	}

	return ctx, nil
}
