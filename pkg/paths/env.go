package paths

import (
	"os"
	"sort"
	"sync"
)

// Env is the environment variable table consulted by Resolve. The installer
// mutates it (an env task may set XDG_CONFIG_HOME) and later resolutions
// observe the change because tasks run sequentially.
type Env interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Environ() []string
}

// OSEnv is the process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string { return os.Getenv(key) }

func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (OSEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

func (OSEnv) Environ() []string { return os.Environ() }

// MapEnv is an in-memory environment, mainly for tests.
type MapEnv struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnv creates a MapEnv seeded with vars.
func NewMapEnv(vars map[string]string) *MapEnv {
	m := &MapEnv{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

func (m *MapEnv) Getenv(key string) string {
	v, _ := m.LookupEnv(key)
	return v
}

func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapEnv) Setenv(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

// Environ returns KEY=value pairs sorted by key.
func (m *MapEnv) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
