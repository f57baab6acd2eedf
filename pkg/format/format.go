// Package format provides rendering helpers for user-facing Telegram text
package format

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB"}

// Size converts a byte count to a parenthesized human-readable suffix,
// e.g. "(12.34 MB)". Zero or negative input yields an empty string.
// The magnitude is chosen before rounding, so a value just under a unit
// boundary stays in its unit and may render as "(1024 KB)".
func Size(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return ""
	}

	i := int(math.Floor(math.Log(float64(sizeBytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	value := float64(sizeBytes) / math.Pow(1024, float64(i))
	rounded := math.Round(value*100) / 100

	return "(" + strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i] + ")"
}

// markdownEscapeChars is the punctuation Telegram's MarkdownV2 dialect reserves
const markdownEscapeChars = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown prefixes every reserved MarkdownV2 character with a
// backslash so user-supplied text cannot break or inject markup
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if strings.ContainsRune(markdownEscapeChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}

	return b.String()
}
