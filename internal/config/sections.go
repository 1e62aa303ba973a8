package config

// Section accessors return snapshot structs. Mutating a snapshot does
// not change the underlying document; use Config.Set for that.

// EditorConfig provides type-safe access to editor settings.
type EditorConfig struct {
	// TabWidth is the display width of a tab stop.
	TabWidth int

	// Format is the line-ending convention ("unix", "dos", "mac").
	Format string

	// ReadOnly rejects mutating events on new buffers.
	ReadOnly bool

	// ScrollOff is the minimum number of lines kept visible above and
	// below the cursor.
	ScrollOff int
}

// SearchConfig provides type-safe access to pattern-search settings.
type SearchConfig struct {
	// Wrap continues a search past the end of the text.
	Wrap bool

	// IgnoreCase matches patterns case-insensitively.
	IgnoreCase bool
}

// ModeConfig provides type-safe access to mode-machine settings.
type ModeConfig struct {
	// Start is the mode a new buffer begins in ("normal", "insert").
	Start string
}

// Editor returns the editor settings section.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		TabWidth:  c.GetInt("editor.tab_width", 4),
		Format:    c.GetString("editor.format", "unix"),
		ReadOnly:  c.GetBool("editor.read_only", false),
		ScrollOff: c.GetInt("editor.scroll_off", 0),
	}
}

// Search returns the pattern-search settings section.
func (c *Config) Search() SearchConfig {
	return SearchConfig{
		Wrap:       c.GetBool("search.wrap", true),
		IgnoreCase: c.GetBool("search.ignore_case", false),
	}
}

// Mode returns the mode-machine settings section.
func (c *Config) Mode() ModeConfig {
	return ModeConfig{
		Start: c.GetString("mode.start", "normal"),
	}
}
