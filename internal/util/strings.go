package util

// Truncate shortens s to at most n runes, marking the cut with "...".
// Strings that already fit are returned unchanged.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
