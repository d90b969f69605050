package command

import (
	"fmt"
	"strings"
)

// lineOfLength renders a repeated-character rule of the given length.
func lineOfLength(length int, char string) string {
	if length < 0 {
		return ""
	}
	return strings.Repeat(char, length)
}

// fixedDigits renders n zero-padded to the given width.
func fixedDigits(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
