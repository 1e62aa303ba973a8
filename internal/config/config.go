// Package config holds the editor's settings as a JSON document
// queried by path. TOML and YAML config files are accepted and
// normalized to JSON on load; defaults fill any path a file does not
// set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

const defaultJSON = `{
  "editor": {
    "tab_width": 4,
    "format": "unix",
    "read_only": false,
    "scroll_off": 0
  },
  "search": {
    "wrap": true,
    "ignore_case": false
  },
  "mode": {
    "start": "normal"
  }
}`

// Config is a live settings document. All methods are safe for
// concurrent use.
type Config struct {
	mu  sync.RWMutex
	doc string

	watcher  *watcher
	notifier map[string]func()
}

// New returns a Config holding only the defaults.
func New() *Config {
	return &Config{doc: defaultJSON}
}

// Load reads a config file and overlays it on the defaults. The
// format follows the extension: .json, .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	c := New()
	if err := c.merge(path); err != nil {
		return nil, err
	}
	return c, nil
}

// merge overlays the file at path onto the current document.
func (c *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return err
	}

	var m map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	doc := c.doc
	for path, value := range flatten("", m) {
		doc, err = sjson.Set(doc, path, value)
		if err != nil {
			return err
		}
	}
	c.doc = doc
	return nil
}

// flatten converts nested maps to dotted setting paths.
func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range flatten(path, sub) {
				out[sk] = sv
			}
			continue
		}
		out[path] = v
	}
	return out
}

// Get returns the raw value at a dotted path.
func (c *Config) Get(path string) (gjson.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := gjson.Get(c.doc, path)
	if !res.Exists() {
		return res, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return res, nil
}

// GetString returns the string at path, or fallback when unset.
func (c *Config) GetString(path, fallback string) string {
	res, err := c.Get(path)
	if err != nil {
		return fallback
	}
	return res.String()
}

// GetInt returns the integer at path, or fallback when unset.
func (c *Config) GetInt(path string, fallback int) int {
	res, err := c.Get(path)
	if err != nil {
		return fallback
	}
	return int(res.Int())
}

// GetBool returns the boolean at path, or fallback when unset.
func (c *Config) GetBool(path string, fallback bool) bool {
	res, err := c.Get(path)
	if err != nil {
		return fallback
	}
	return res.Bool()
}

// Set updates the value at a dotted path and fires change
// notifications.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	doc, err := sjson.Set(c.doc, path, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.doc = doc
	c.mu.Unlock()

	c.notifyChanged()
	return nil
}

// JSON returns the whole document as JSON.
func (c *Config) JSON() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc
}

func (c *Config) notifyChanged() {
	c.mu.RLock()
	fns := make([]func(), 0, len(c.notifier))
	for _, fn := range c.notifier {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// OnChange registers fn to run after any settings change and returns
// a token for RemoveOnChange.
func (c *Config) OnChange(fn func()) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notifier == nil {
		c.notifier = make(map[string]func())
	}
	token := uuid.NewString()
	c.notifier[token] = fn
	return token
}

// RemoveOnChange drops the listener registered under token.
func (c *Config) RemoveOnChange(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.notifier, token)
}
