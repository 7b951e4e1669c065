package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	p := loadFrom(filepath.Join(t.TempDir(), "preferences.json"))

	if got := p.FloatWithFallback(KeySplitOffset, 0.72); got != 0.72 {
		t.Errorf("FloatWithFallback = %v, want fallback 0.72", got)
	}
	if got := p.String(KeyLastOpenDir); got != "" {
		t.Errorf("String = %q, want empty", got)
	}
	if got := p.Bool("grid_visible", true); !got {
		t.Error("Bool should return fallback true")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	p := loadFrom(path)
	p.SetFloat(KeyWindowWidth, 1280)
	p.SetString(KeyDescribeModel, "gpt-4o-mini")
	p.SetBool("grid_visible", false)
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	q := loadFrom(path)
	if got := q.FloatWithFallback(KeyWindowWidth, 0); got != 1280 {
		t.Errorf("reloaded width = %v, want 1280", got)
	}
	if got := q.String(KeyDescribeModel); got != "gpt-4o-mini" {
		t.Errorf("reloaded model = %q", got)
	}
	if got := q.Bool("grid_visible", true); got {
		t.Error("reloaded grid_visible should be false")
	}
}

func TestLoadFromIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := loadFrom(path)
	if got := p.StringWithFallback(KeyDescribeBaseURL, "default"); got != "default" {
		t.Errorf("corrupt file should yield fallback, got %q", got)
	}
}

func TestStringWithFallbackWrongType(t *testing.T) {
	p := loadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	p.SetFloat(KeyLastExportDir, 3)

	if got := p.StringWithFallback(KeyLastExportDir, "fb"); got != "fb" {
		t.Errorf("wrong-typed value should yield fallback, got %q", got)
	}
}
