package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultOptions())
	require.NoError(t, err)
	return e
}

func TestRenderBlocksLeaveNoWhitespace(t *testing.T) {
	src := `static const char * const names[] = {
{{ range .items }}
  {{ if .on }}
  "{{ .name }}",
  {{ end }}
{{ end }}
};
`
	data := map[string]any{
		"items": []map[string]any{
			{"name": "a", "on": true},
			{"name": "b", "on": false},
			{"name": "c", "on": true},
		},
	}

	out, err := newEngine(t).Render("names", src, data)
	require.NoError(t, err)
	assert.Equal(t, "static const char * const names[] = {\n  \"a\",\n  \"c\",\n};\n", string(out))
}

func TestRenderMissingKeyFails(t *testing.T) {
	_, err := newEngine(t).Render("t", "{{ .undefined_key }}", map[string]any{"x": 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to render template")
}

func TestRenderMissingKeyZero(t *testing.T) {
	e, err := NewEngine(Options{MissingKey: "zero"})
	require.NoError(t, err)

	out, err := e.Render("t", "[{{ .undefined_key }}]", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestCompileSyntaxError(t *testing.T) {
	_, err := newEngine(t).Compile("t", "{{ if .x }}")
	assert.ErrorContains(t, err, "failed to parse template")
}

func TestNewEngineRejectsMissingKeyMode(t *testing.T) {
	_, err := NewEngine(Options{MissingKey: "ignore"})
	assert.ErrorContains(t, err, "invalid missing key mode")
}

func TestFuncMap(t *testing.T) {
	out, err := newEngine(t).Render("t",
		`{{ macro "mainStick" }} {{ camel "trim_left" }} {{ lower_camel "adc_input" }} {{ upper "sa" }}`,
		nil)
	require.NoError(t, err)
	assert.Equal(t, "MAIN_STICK TrimLeft adcInput SA", string(out))
}

func TestFuncMapIsHermetic(t *testing.T) {
	funcs := FuncMap()
	for _, name := range []string{"now", "randAlpha", "uuidv4", "env", "shuffle"} {
		assert.NotContains(t, funcs, name)
	}
	assert.Contains(t, funcs, "upper")
}

func TestRenderIsDeterministic(t *testing.T) {
	src := "{{ range $k, $v := .m }}{{ $k }}={{ $v }};{{ end }}"
	data := map[string]any{"m": map[string]int{"b": 2, "a": 1, "c": 3}}

	e := newEngine(t)
	first, err := e.Render("t", src, data)
	require.NoError(t, err)
	second, err := e.Render("t", src, data)
	require.NoError(t, err)

	assert.Equal(t, "a=1;b=2;c=3;", string(first))
	assert.Equal(t, first, second)
}
