package rope

// Summary holds the aggregated metrics for a span of text. Every node
// carries the summary of its subtree so that char, byte and line
// addressing all resolve in one descent.
type Summary struct {
	Bytes    int
	Chars    int
	Newlines int
}

func (s Summary) add(o Summary) Summary {
	return Summary{
		Bytes:    s.Bytes + o.Bytes,
		Chars:    s.Chars + o.Chars,
		Newlines: s.Newlines + o.Newlines,
	}
}
