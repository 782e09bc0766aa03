package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veryl-lang/veryl-go/internal/config"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "veryl.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaultsFilelistType(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "project:\n  name: demo\n  version: 0.1.0\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project.Name != "demo" {
		t.Errorf("name = %q, want demo", cfg.Project.Name)
	}
	if cfg.Build.FilelistType != config.FilelistRelative {
		t.Errorf("filelist type = %q, want relative default", cfg.Build.FilelistType)
	}
}

func TestWriteFilelistThreeModes(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sub", "top.sv")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(out, []byte("// generated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		mode config.FilelistMode
		want string
	}{
		{config.FilelistRelative, "sub/top.sv"},
		{config.FilelistFlgen, "source_file 'sub/top.sv'"},
	}
	for _, tc := range tests {
		path := writeManifest(t, dir, "project:\n  name: demo\nbuild:\n  filelist_type: "+string(tc.mode)+"\n")
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if err := cfg.WriteFilelist([]string{out}); err != nil {
			t.Fatalf("WriteFilelist: %v", err)
		}
		var listName string
		if tc.mode == config.FilelistFlgen {
			listName = "demo.list.rb"
		} else {
			listName = "demo.f"
		}
		data, err := os.ReadFile(filepath.Join(dir, listName))
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !strings.Contains(string(data), tc.want) {
			t.Errorf("mode %s: filelist = %q, want to contain %q", tc.mode, data, tc.want)
		}
	}

	path := writeManifest(t, dir, "project:\n  name: demo\nbuild:\n  filelist_type: absolute\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.WriteFilelist([]string{out}); err != nil {
		t.Fatalf("WriteFilelist: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "demo.f"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), out) {
		t.Errorf("absolute filelist = %q, want to contain %q", data, out)
	}
}
