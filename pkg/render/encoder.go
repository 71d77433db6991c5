package render

// Symbol is an encoded QR matrix without quiet zone. Modules holds Size*Size
// entries in row-major order; true marks a dark module.
type Symbol struct {
	Size    int
	Modules []bool
}

// Dark reports whether the module at (x, y) is dark. Out-of-range
// coordinates are light.
func (s *Symbol) Dark(x, y int) bool {
	if s == nil || x < 0 || y < 0 || x >= s.Size || y >= s.Size {
		return false
	}
	return s.Modules[y*s.Size+x]
}

// Encoder produces a QR symbol for a payload.
type Encoder interface {
	Encode(payload string, level Level) (*Symbol, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(payload string, level Level) (*Symbol, error)

// Encode calls f.
func (f EncoderFunc) Encode(payload string, level Level) (*Symbol, error) {
	return f(payload, level)
}
