package table_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lvillar/canvastable/table"
)

func TestNormalizePaddingNumber(t *testing.T) {
	for _, n := range []float64{0, 1, 5, 12.5, 40} {
		got := table.NormalizePadding(table.Uniform(n), table.UniformPadding(99))
		assert.Equal(t, table.Padding{Top: n, Right: n, Bottom: n, Left: n}, got)
	}
}

func TestNormalizePaddingIdempotent(t *testing.T) {
	for _, p := range []table.Padding{
		{},
		{Top: 1, Right: 2, Bottom: 3, Left: 4},
		table.UniformPadding(20),
	} {
		once := table.NormalizePadding(p.Spec(), table.UniformPadding(7))
		assert.Equal(t, p, once)
		assert.Equal(t, once, table.NormalizePadding(once.Spec(), table.Padding{}))
	}
}

func TestNormalizePaddingAbsentAndPartial(t *testing.T) {
	assert.Equal(t, table.Padding{}, table.NormalizePadding(nil, table.UniformPadding(20)))

	left := 3.0
	got := table.NormalizePadding(&table.PaddingSpec{Left: &left}, table.UniformPadding(20))
	assert.Equal(t, table.Padding{Top: 20, Right: 20, Bottom: 20, Left: 3}, got)

	all, top := 2.0, 9.0
	got = table.NormalizePadding(&table.PaddingSpec{All: &all, Top: &top}, table.UniformPadding(20))
	assert.Equal(t, table.Padding{Top: 9, Right: 2, Bottom: 2, Left: 2}, got)
}

func TestPaddingSpecYAML(t *testing.T) {
	var doc struct {
		A *table.PaddingSpec `yaml:"a"`
		B *table.PaddingSpec `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 4\nb: {left: 1, top: 2}\n"), &doc))

	assert.Equal(t, table.UniformPadding(4), table.NormalizePadding(doc.A, table.Padding{}))
	assert.Equal(t, table.Padding{Top: 2, Right: 5, Bottom: 5, Left: 1}, table.NormalizePadding(doc.B, table.UniformPadding(5)))

	err := yaml.Unmarshal([]byte("a: [1, 2]\n"), &doc)
	assert.Error(t, err)
}

func TestPaddingSpecJSON(t *testing.T) {
	var doc struct {
		A *table.PaddingSpec `json:"a"`
		B *table.PaddingSpec `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 4, "b": {"left": 1, "top": 2}}`), &doc))

	assert.Equal(t, table.UniformPadding(4), table.NormalizePadding(doc.A, table.Padding{}))
	assert.Equal(t, table.Padding{Top: 2, Right: 5, Bottom: 5, Left: 1}, table.NormalizePadding(doc.B, table.UniformPadding(5)))

	assert.Error(t, json.Unmarshal([]byte(`{"a": [1, 2]}`), &doc))
}

func TestPaddingSpecRoundTrip(t *testing.T) {
	top := 8.0
	overridden := table.Uniform(4)
	overridden.Top = &top
	base := table.UniformPadding(5)

	for name, spec := range map[string]*table.PaddingSpec{
		"number":     table.Uniform(3),
		"partial":    {Top: &top},
		"overridden": overridden,
	} {
		want := table.NormalizePadding(spec, base)

		jsonBytes, err := json.Marshal(spec)
		require.NoError(t, err, name)
		var fromJSON table.PaddingSpec
		require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON), name)
		assert.Equal(t, want, table.NormalizePadding(&fromJSON, base), "%s: %s", name, jsonBytes)

		yamlBytes, err := yaml.Marshal(spec)
		require.NoError(t, err, name)
		var fromYAML table.PaddingSpec
		require.NoError(t, yaml.Unmarshal(yamlBytes, &fromYAML), name)
		assert.Equal(t, want, table.NormalizePadding(&fromYAML, base), "%s: %s", name, yamlBytes)
	}

	jsonBytes, err := json.Marshal(table.Uniform(3))
	require.NoError(t, err)
	assert.Equal(t, "3", string(jsonBytes))
}

func TestResolveStyle(t *testing.T) {
	global := table.Style{FontFamily: "sans-serif", FontSize: 12, FontWeight: "normal", Color: "#444444", TextAlign: "left", LineHeight: 1.2}
	column := table.Style{TextAlign: "right", Color: "#000"}
	cell := table.Style{Color: "red", Background: "#eee"}

	got := table.ResolveStyle(global, column, cell)
	assert.Equal(t, table.Style{
		FontFamily: "sans-serif",
		FontSize:   12,
		FontWeight: "normal",
		Color:      "red",
		TextAlign:  "right",
		Background: "#eee",
		LineHeight: 1.2,
	}, got)

	assert.Equal(t, global, table.ResolveStyle(global, table.Style{}), "empty layers change nothing")
	assert.Equal(t, table.Style{}, table.ResolveStyle())
}

func TestCellYAML(t *testing.T) {
	var rows [][]table.Cell
	src := `
- ["lorem", {value: "200$", color: "#c00", textAlign: right}]
- [{barcode: {kind: qr, data: "https://example.com"}}, {value: "INV-1", barcode: {kind: code128}}]
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, table.Text("lorem"), rows[0][0])
	assert.Equal(t, "200$", rows[0][1].Value())
	assert.Equal(t, table.Style{Color: "#c00", TextAlign: "right"}, rows[0][1].Style)

	assert.Equal(t, table.BarcodeContent{Kind: "qr", Data: "https://example.com"}, rows[1][0].Content)
	assert.Equal(t, table.BarcodeContent{Kind: "code128", Data: "INV-1"}, rows[1][1].Content)
}

func TestCellJSON(t *testing.T) {
	var rows [][]table.Cell
	src := `[
		["lorem", {"value": "200$", "color": "#c00", "textAlign": "right"}],
		[{"barcode": {"kind": "qr", "data": "https://example.com"}}, {"value": "INV-1", "barcode": {"kind": "code128"}}]
	]`
	require.NoError(t, json.Unmarshal([]byte(src), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, table.Text("lorem"), rows[0][0])
	assert.Equal(t, "200$", rows[0][1].Value())
	assert.Equal(t, table.Style{Color: "#c00", TextAlign: "right"}, rows[0][1].Style)
	assert.Equal(t, table.BarcodeContent{Kind: "qr", Data: "https://example.com"}, rows[1][0].Content)
	assert.Equal(t, table.BarcodeContent{Kind: "code128", Data: "INV-1"}, rows[1][1].Content)

	assert.Error(t, json.Unmarshal([]byte(`[[["nested"]]]`), &rows))
}

func TestCellRoundTrip(t *testing.T) {
	rows := [][]table.Cell{
		{table.Text("plain"), table.Styled("200$", table.Style{Color: "#c00", TextAlign: "right"})},
		{table.Barcode("qr", "https://example.com"), table.Text("")},
	}

	jsonBytes, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"plain"`, "unstyled text encodes as a string")
	var fromJSON [][]table.Cell
	require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON))
	assert.Equal(t, rows, fromJSON)

	yamlBytes, err := yaml.Marshal(rows)
	require.NoError(t, err)
	var fromYAML [][]table.Cell
	require.NoError(t, yaml.Unmarshal(yamlBytes, &fromYAML))
	assert.Equal(t, rows, fromYAML)
}
