package main

import (
	"encoding/json"
	"fmt"

	"github.com/KevinKickass/hwdefs/internal/config"
	"github.com/KevinKickass/hwdefs/internal/generator"
	"github.com/KevinKickass/hwdefs/internal/hwdef"
	"github.com/KevinKickass/hwdefs/internal/labels"
	"github.com/KevinKickass/hwdefs/internal/legacy"
	"github.com/KevinKickass/hwdefs/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newApp(logger *zap.Logger) *app {
	return &app{
		v:      config.New(),
		logger: logger,
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "hwdefs <hwdef.json> <template> <target>",
		Short: "Render a firmware source template against a radio hardware description",
		Long: `hwdefs reads a hardware description (ADC inputs, switches, keys, trims),
derives lookup tables from it and renders a text/template to stdout.

Besides the top-level fields of the description, templates see
adc_index, adc_gpios, switch_gpios, key_gpios, trim_gpios,
legacy_inputs and main_labels.`,
		Version:           Version,
		Args:              cobra.ExactArgs(3),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.newGenerator()
			if err != nil {
				return err
			}
			return gen.Generate(args[0], args[1], args[2], cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./hwdefs.yaml if present)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("legacy-data", "", "YAML file replacing the built-in legacy name table")

	// Flags override file and environment
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("legacy.data_file", flags.Lookup("legacy-data"))

	root.AddCommand(a.contextCommand(), a.targetsCommand())

	return root
}

func (a *app) contextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "context <hwdef.json> <target>",
		Short: "Print the data templates are rendered against as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.newGenerator()
			if err != nil {
				return err
			}

			ctx, err := gen.Context(args[0], args[1])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(ctx); err != nil {
				return fmt.Errorf("failed to encode context: %w", err)
			}
			return nil
		},
	}
}

func (a *app) targetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the targets with legacy input names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.newLegacyTable()
			if err != nil {
				return err
			}
			for _, target := range table.Targets() {
				fmt.Fprintln(cmd.OutOrStdout(), target)
			}
			return nil
		},
	}
}

// setup loads the configuration and replaces the bootstrap logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger

	a.logger.Debug("Config loaded",
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("legacy_data", cfg.Legacy.DataFile))

	return nil
}

func (a *app) newGenerator() (*generator.Generator, error) {
	loader, err := hwdef.NewLoader(a.cfg.Hwdef.ValidateSchema, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}

	resolver, err := a.newLegacyTable()
	if err != nil {
		return nil, err
	}

	engine, err := render.NewEngine(render.Options{
		LStripBlocks: a.cfg.Render.LStripBlocks,
		TrimBlocks:   a.cfg.Render.TrimBlocks,
		MissingKey:   a.cfg.Render.MissingKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template engine: %w", err)
	}

	return generator.New(loader, resolver, labels.Main(), engine, a.logger), nil
}

func (a *app) newLegacyTable() (*legacy.Table, error) {
	if path := a.cfg.Legacy.DataFile; path != "" {
		a.logger.Info("Using legacy name table", zap.String("path", path))
		return legacy.LoadTable(path, a.cfg.Legacy.CacheSize)
	}
	return legacy.NewDefaultTable(a.cfg.Legacy.CacheSize)
}
