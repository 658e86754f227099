package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KevinKickass/hwdefs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	a := newApp(zap.NewNop())
	cmd := a.rootCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func fixture(t *testing.T) (dir, jsonPath, tmplPath string) {
	t.Helper()
	dir = t.TempDir()
	chdir(t, dir)

	jsonPath = filepath.Join(dir, "hw.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"adc_inputs": [{"name":"X1","port":"PA0"}], "switches": [{"name":"SA","port":"PB3"}]}`), 0o644))

	tmplPath = filepath.Join(dir, "out.tmpl")
	require.NoError(t, os.WriteFile(tmplPath,
		[]byte("{{ .adc_index.X1.port }}\n{{ range .switch_gpios.PB3 }}\n{{ .name }}\n{{ end }}\n"), 0o644))

	return dir, jsonPath, tmplPath
}

func TestGenerateCommand(t *testing.T) {
	_, jsonPath, tmplPath := fixture(t)

	out, err := run(t, jsonPath, tmplPath, "T16")
	require.NoError(t, err)
	assert.Equal(t, "PA0\nSA\n", out)
}

func TestGenerateCommandArgs(t *testing.T) {
	_, jsonPath, _ := fixture(t)

	_, err := run(t, jsonPath)
	assert.Error(t, err)
}

func TestGenerateCommandFailure(t *testing.T) {
	dir, jsonPath, _ := fixture(t)
	tmplPath := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("{{ .undefined_key }}"), 0o644))

	out, err := run(t, jsonPath, tmplPath, "T16")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestConfigFileDisablesTrimming(t *testing.T) {
	dir, jsonPath, tmplPath := fixture(t)
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("render:\n  trim_blocks: false\n  lstrip_blocks: false\n"), 0o644))

	out, err := run(t, "--config", cfgPath, jsonPath, tmplPath, "T16")
	require.NoError(t, err)
	assert.Equal(t, "PA0\n\nSA\n\n", out)
}

func TestContextCommand(t *testing.T) {
	_, jsonPath, _ := fixture(t)

	out, err := run(t, "context", jsonPath, "x9d")
	require.NoError(t, err)

	var ctx map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &ctx))
	assert.Contains(t, ctx, "adc_index")
	assert.Contains(t, ctx, "main_labels")
	assert.Contains(t, ctx["legacy_inputs"], "SL1")
	assert.Equal(t, []any{}, ctx["trims"])
}

func TestTargetsCommand(t *testing.T) {
	fixture(t)

	out, err := run(t, "targets")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "tx16s")
}

func TestLegacyDataFlag(t *testing.T) {
	dir, _, _ := fixture(t)
	data := filepath.Join(dir, "legacy.yaml")
	require.NoError(t, os.WriteFile(data, []byte("- targets: [proto]\n  inputs: {}\n"), 0o644))

	out, err := run(t, "targets", "--legacy-data", data)
	require.NoError(t, err)
	assert.Equal(t, "proto\n", out)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(defaultLogConfig())
	assert.NoError(t, err)

	_, err = newLogger(config.LogConfig{Level: "debug", Encoding: "json"})
	assert.NoError(t, err)

	_, err = newLogger(config.LogConfig{Level: "loud", Encoding: "console"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = newLogger(config.LogConfig{Level: "info", Encoding: "xml"})
	assert.ErrorContains(t, err, "invalid log encoding")
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
