package tabletpl_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/lvillar/canvastable/tabletpl"
)

func ExampleRender() {
	src := `
width: 480
height: 200
columns:
  - title: Item
  - title: Qty
    style: {textAlign: center}
  - title: Price
    style: {textAlign: right}
rows:
  - [WDG-001, "10", "$5.00"]
  - [WDG-002, "5", {value: "$12.00", color: "#c00"}]
  - [SVC-001, "1", "$50.00"]
options:
  title: {text: "Invoice #1234"}
  subtitle: {text: "2024-01-15"}
  borders:
    table: {color: "#ccc", width: 1}
  fit: true
`
	var buf bytes.Buffer
	if err := tabletpl.Render(context.Background(), &buf, []byte(src)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	// Output: true
}

func ExampleMeasure() {
	doc, err := tabletpl.Parse([]byte(`{"width": 400, "height": 150, "columns": [{"title": "A"}, {"title": "B"}], "rows": [["1", "2"]], "options": {"fit": true}}`))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	m, err := tabletpl.Measure(context.Background(), doc)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	var total float64
	for _, w := range m.ColumnWidths {
		total += w
	}
	fmt.Printf("%.0f %.0f\n", m.Dimensions.Width, total)
	// Output: 360 360
}
