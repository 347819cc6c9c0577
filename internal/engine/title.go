package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// titleMaxRunes caps note titles at 80 Unicode code points, not bytes.
const titleMaxRunes = 80

// titleOf derives a note title from resolved content: the first line,
// NFC-normalized, truncated to titleMaxRunes code points.
func titleOf(content string) string {
	line, _, _ := strings.Cut(norm.NFC.String(content), "\n")
	runes := []rune(line)
	if len(runes) > titleMaxRunes {
		runes = runes[:titleMaxRunes]
	}
	return string(runes)
}
