package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/ibmkbd/table"
)

const sampleYAML = `
layers:
  - name: base
    keys:
      - ["ESC", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "A", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
      - ["", "", "", "", "", "", "", "", "", "", "", "", "", "", "", ""]
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample layout: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSample(t)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Layers) != 1 {
		t.Fatalf("len(Layers) = %d, want 1", len(cfg.Layers))
	}
	if cfg.Layers[0].Name != "base" {
		t.Errorf("Layers[0].Name = %q, want base", cfg.Layers[0].Name)
	}
	if got := cfg.Layers[0].Keys[0][0]; got != "ESC" {
		t.Errorf("Keys[0][0] = %q, want ESC", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/layout.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBuild(t *testing.T) {
	path := writeSample(t)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	actions := map[string]table.Action{"ESC": 1, "A": 2}
	resolve := func(name string) table.Action { return actions[name] }

	m := Build(cfg, resolve)
	if len(m) != 1 {
		t.Fatalf("len(LayerMap) = %d, want 1", len(m))
	}
	if got := m[0][0][0]; got != 1 {
		t.Errorf("m[0][0][0] = %d, want 1", got)
	}
	if got := m[0][2][4]; got != 2 {
		t.Errorf("m[0][2][4] = %d, want 2", got)
	}
	if got := m[0][1][0]; got != table.NoAction {
		t.Errorf("m[0][1][0] = %d, want NoAction for empty cell", got)
	}
}
