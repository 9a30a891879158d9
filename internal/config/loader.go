package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads YAML configuration files, substitutes $VAR string values
// from the environment, and memoizes the processed result per path.
// Returned maps are shared between callers and must be treated as
// read-only.
type Loader struct {
	mu       sync.Mutex
	cache    map[string]map[string]any
	readFile func(string) ([]byte, error)
}

func NewLoader() *Loader {
	return &Loader{
		cache:    make(map[string]map[string]any),
		readFile: os.ReadFile,
	}
}

// Load returns the processed content of the YAML file at path. A missing
// file yields an empty map, not an error. Repeated calls with the same
// path hit the cache without touching disk.
func (l *Loader) Load(path string) (map[string]any, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]any{}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[path]; ok {
		return cached, nil
	}

	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	processed := processMap(raw)
	l.cache[path] = processed
	return processed, nil
}

// Reset clears the cache so the next Load re-reads from disk.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]map[string]any)
}

func processMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		switch v := value.(type) {
		case map[string]any:
			out[key] = processMap(v)
		case string:
			out[key] = replaceEnvVar(v)
		default:
			out[key] = value
		}
	}
	return out
}

// replaceEnvVar rewrites "$NAME" to the value of the NAME environment
// variable, or to the literal name when unset.
func replaceEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}
	name := value[1:]
	if env, ok := os.LookupEnv(name); ok {
		return env
	}
	return name
}
