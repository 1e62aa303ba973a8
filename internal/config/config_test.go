package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := New()
	ed := c.Editor()
	if ed.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", ed.TabWidth)
	}
	if ed.Format != "unix" {
		t.Errorf("Format = %q, want unix", ed.Format)
	}
	if !c.Search().Wrap {
		t.Error("search wrap default should be true")
	}
	if got := c.Mode().Start; got != "normal" {
		t.Errorf("mode start = %q, want normal", got)
	}
}

func TestGetSet(t *testing.T) {
	c := New()
	if err := c.Set("editor.tab_width", 8); err != nil {
		t.Fatal(err)
	}
	if got := c.GetInt("editor.tab_width", 0); got != 8 {
		t.Errorf("tab_width = %d, want 8", got)
	}

	_, err := c.Get("no.such.path")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("error = %v, want ErrSettingNotFound", err)
	}
	if got := c.GetString("no.such.path", "fb"); got != "fb" {
		t.Errorf("fallback = %q, want fb", got)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"editor": {"tab_width": 2, "format": "dos"}}`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ed := c.Editor()
	if ed.TabWidth != 2 || ed.Format != "dos" {
		t.Errorf("editor = %+v", ed)
	}
	// untouched defaults survive the overlay
	if ed.ScrollOff != 0 || !c.Search().Wrap {
		t.Error("defaults lost after load")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "cfg.toml", "[editor]\ntab_width = 3\n\n[search]\nignore_case = true\n")
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Editor().TabWidth; got != 3 {
		t.Errorf("TabWidth = %d, want 3", got)
	}
	if !c.Search().IgnoreCase {
		t.Error("ignore_case not loaded from toml")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "editor:\n  tab_width: 5\nmode:\n  start: insert\n")
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Editor().TabWidth; got != 5 {
		t.Errorf("TabWidth = %d, want 5", got)
	}
	if got := c.Mode().Start; got != "insert" {
		t.Errorf("mode start = %q, want insert", got)
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	path := writeFile(t, "cfg.ini", "[editor]")
	_, err := Load(path)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, "bad.json", `{"editor": `)
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error = %v, want ParseError", err)
	}
}

func TestOnChange(t *testing.T) {
	c := New()
	fired := 0
	token := c.OnChange(func() { fired++ })

	if err := c.Set("editor.tab_width", 2); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	c.RemoveOnChange(token)
	if err := c.Set("editor.tab_width", 6); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("fired after remove = %d, want 1", fired)
	}
}
