package buffer

import "errors"

var (
	// ErrFailBuffer indicates the initial content could not be read
	// into the text store. No buffer is produced.
	ErrFailBuffer = errors.New("buffer: failed to load content")

	// ErrReadOnly indicates a mutating event reached a read-only
	// buffer. The buffer state is unchanged.
	ErrReadOnly = errors.New("buffer: read-only")

	// ErrFatal indicates an internally inconsistent state, such as a
	// direction qualifier reaching a motion that does not support it.
	// It aborts the current command without corrupting buffer state.
	ErrFatal = errors.New("buffer: fatal")
)
