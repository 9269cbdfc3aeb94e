package core

// Sample is the element type of the sample buffers handled by this module:
// raw oscillator output or normalized floats.
type Sample interface {
	~int16 | ~float64
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T Sample](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to 0.
func Zero[T Sample](buf []T) {
	clear(buf)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto[T Sample](dst, src []T) int {
	return copy(dst, src)
}
