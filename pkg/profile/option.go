package profile

// Option identifies a profiler back end by its single-character
// configuration code.
type Option rune

// String returns the code as a one-character string.
func (o Option) String() string {
	return string(rune(o))
}
