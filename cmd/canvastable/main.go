// Command canvastable renders table documents to PNG images and serves the
// same rendering to AI assistants over MCP (Model Context Protocol).
//
// # Installation
//
//	go install github.com/lvillar/canvastable/cmd/canvastable@latest
//
// # Usage
//
//	canvastable render invoice.yaml report.json -d out/
//	canvastable dimensions invoice.yaml --format yaml
//	canvastable defaults --format yaml
//	canvastable mcp
//
// # Environment
//
// Settings shared by every document are read from CANVASTABLE_* variables,
// e.g. CANVASTABLE_DEVICE_PIXEL_RATIO, CANVASTABLE_MIN_CHAR_WIDTH,
// CANVASTABLE_BACKGROUND, CANVASTABLE_FIT and CANVASTABLE_CONCURRENCY.
// Options inside a document are merged over them.
package main

func main() {
	Execute()
}
