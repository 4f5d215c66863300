package utils

import "unicode/utf8"

// Reverse returns s with its characters in reverse order. Invalid UTF-8
// bytes are moved one by one.
func Reverse(s string) string {
	b := make([]byte, 0, len(s))
	for i := len(s); i > 0; {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		b = append(b, s[i-size:i]...)
		i -= size
	}
	return string(b)
}
