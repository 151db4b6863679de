package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/iui/engine/colors"
	"github.com/hubastard/iui/engine/ui"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPartial(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"toml", "ui.toml", `
font_height = 20
max_windows = 8
batching = false

[style]
window_bg = "#102030ff"
`},
		{"yaml", "ui.yaml", `
font_height: 20
max_windows: 8
batching: false
style:
  window_bg: "#102030ff"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.FontHeight != 20 || cfg.MaxWindows != 8 || cfg.Batching {
				t.Errorf("overrides not applied: %+v", cfg)
			}
			if cfg.TitleHeight != 20+2*cfg.Padding {
				t.Errorf("title height: got %v", cfg.TitleHeight)
			}
			if cfg.ClipStackSize != ui.ClipStackSize || cfg.MaxCommands != ui.MaxCommands {
				t.Errorf("defaults lost: %+v", cfg)
			}
			if cfg.Style.WindowBg != colors.Hex(0x102030ff) {
				t.Errorf("window bg: got %#08x", uint32(cfg.Style.WindowBg))
			}
			if cfg.Style.TitleText != ui.DefaultStyle().TitleText {
				t.Error("unset style field lost its default")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	want := ui.DefaultConfig()
	want.FontHeight = 13
	want.TitleHeight = 0
	want.MaxDirtyRects = 7
	want.Debug = true
	want.Style.Grip = colors.Hex(0xabcdef01)
	want = want.WithDefaults()

	for _, name := range []string{"out.toml", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			got.Logger, want.Logger = nil, nil
			if got != want {
				t.Errorf("got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("ui.json"); !errors.Is(err, ErrFormat) {
		t.Errorf("json: got %v, want ErrFormat", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "ui.ini"), ui.DefaultConfig()); !errors.Is(err, ErrFormat) {
		t.Errorf("save ini: got %v, want ErrFormat", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: got %v", err)
	}
	if _, err := Load(writeFile(t, "bad.toml", "font_height = ")); err == nil {
		t.Error("malformed toml accepted")
	}
	if _, err := Load(writeFile(t, "zero.yaml", "font_height: 0\n")); !errors.Is(err, ui.ErrFontHeight) {
		t.Errorf("zero font height: got %v", err)
	}
	if _, err := Load(writeFile(t, "cap.toml", "max_box_children = 1000\n")); !errors.Is(err, ui.ErrCapacity) {
		t.Errorf("capacity: got %v", err)
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.FontHeight != ui.DefaultConfig().FontHeight {
		t.Errorf("got %+v", cfg)
	}
}
