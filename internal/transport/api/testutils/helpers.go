package testutils

import "strings"

// OverBytesWithinRunes строка из четырехбайтовых рун, которая укладывается в maxRunes рун, но длиннее
// maxBytes байт. Если так не получается, возвращает пустую строку.
func OverBytesWithinRunes(maxBytes, maxRunes int) string {
	const symbol = "😁"
	count := maxBytes/len(symbol) + 1
	if count > maxRunes {
		return ""
	}
	return strings.Repeat(symbol, count)
}
