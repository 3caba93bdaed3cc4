package cli

import "unicode/utf8"

// Line editors report the cursor in runes; the dispatcher works in bytes.

// byteOffset converts a rune cursor into a byte offset into input,
// clamped to the input's length.
func byteOffset(input string, runes int) int {
	at := 0
	for i := 0; i < runes && at < len(input); i++ {
		_, size := utf8.DecodeRuneInString(input[at:])
		at += size
	}
	return at
}

// runeOffset converts a byte offset into input into a rune cursor.
func runeOffset(input string, at int) int {
	return utf8.RuneCountInString(input[:min(max(at, 0), len(input))])
}
