package render

// Mode selects how segments are cut out of the source.
type Mode int

const (
	// StreamCopy seeks before opening the input and copies encoded streams.
	// Fast, but cuts snap to keyframes.
	StreamCopy Mode = iota
	// Reencode opens the input, decodes up to the cut and re-encodes.
	// Slow, but cuts land exactly on the segment bounds.
	Reencode
)

// ModeFor maps the --reencode flag to a Mode.
func ModeFor(reencode bool) Mode {
	if reencode {
		return Reencode
	}
	return StreamCopy
}

func (m Mode) String() string {
	if m == Reencode {
		return "re-encode"
	}
	return "stream copy"
}
