package args

// FromArgv returns the first n entries of argv unchanged and in order.
// n is clamped to the bounds of argv.
func FromArgv(n int, argv []string) []string {
	if n < 0 {
		n = 0
	}
	if n > len(argv) {
		n = len(argv)
	}
	out := make([]string, n)
	copy(out, argv[:n])
	return out
}
