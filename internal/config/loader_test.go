package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader()
	got, err := l.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load (missing): expected empty map, got %v", got)
	}
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("CONF_TEST_KEY", "secret-value")
	path := writeConfig(t, `
model:
  api_key: $CONF_TEST_KEY
  missing: $CONF_TEST_UNSET
  plain: no-dollar
  depth: 3
  nested:
    url: $CONF_TEST_KEY
`)

	l := NewLoader()
	got, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	model, ok := got["model"].(map[string]any)
	if !ok {
		t.Fatalf("expected model map, got %T", got["model"])
	}
	if model["api_key"] != "secret-value" {
		t.Errorf("api_key: got %v", model["api_key"])
	}
	// Unset variables fall back to the literal variable name.
	if model["missing"] != "CONF_TEST_UNSET" {
		t.Errorf("missing: got %v", model["missing"])
	}
	if model["plain"] != "no-dollar" {
		t.Errorf("plain: got %v", model["plain"])
	}
	if model["depth"] != 3 {
		t.Errorf("depth: got %v (%T)", model["depth"], model["depth"])
	}
	nested, _ := model["nested"].(map[string]any)
	if nested["url"] != "secret-value" {
		t.Errorf("nested url: got %v", nested["url"])
	}
}

func TestLoadCachesByPath(t *testing.T) {
	path := writeConfig(t, "key: value\n")

	l := NewLoader()
	reads := 0
	inner := l.readFile
	l.readFile = func(p string) ([]byte, error) {
		reads++
		return inner(p)
	}

	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if reads != 1 {
		t.Fatalf("expected a single file read, got %d", reads)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result differs: %v vs %v", first, second)
	}

	l.Reset()
	if _, err := l.Load(path); err != nil {
		t.Fatalf("Load (after reset): %v", err)
	}
	if reads != 2 {
		t.Fatalf("expected re-read after Reset, got %d reads", reads)
	}
}
