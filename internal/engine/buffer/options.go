package buffer

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithFormat sets the buffer's line-ending format.
func WithFormat(f Format) Option {
	return func(b *Buffer) { b.format = f }
}

// WithReadOnly marks the buffer read-only. Mutating events fail with
// ErrReadOnly.
func WithReadOnly() Option {
	return func(b *Buffer) { b.readOnly = true }
}

// WithTabWidth sets the display width of a tab stop.
func WithTabWidth(w int) Option {
	return func(b *Buffer) {
		if w > 0 {
			b.tabWidth = w
		}
	}
}
