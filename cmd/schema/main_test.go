package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomz197/jardin/internal/web"
)

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "protocol.schema.json")
	if err := writeSchema(out, web.Schema()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Jardín websocket protocol") || !strings.HasSuffix(string(data), "}\n") {
		t.Fatalf("unexpected schema file:\n%s", data)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}
