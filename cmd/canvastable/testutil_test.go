package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/lvillar/canvastable"
)

const testDocument = `width: 320
height: 120
columns:
  - title: Item
  - title: Price
    style: {textAlign: right}
rows:
  - [WDG-001, "$5.00"]
  - [SVC-001, {value: "$50.00", color: "#c00"}]
options:
  fit: true
`

func testEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		conf:     config.New(),
		log:      logger.NOP,
		settings: canvastable.DefaultSettings(),
	}
}

func writeDocument(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
