//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//
// STRINGS and []RUNE
//

// Purgechars - drop any of the chars in the bad-string from the check-string
func Purgechars(bad string, checking string) string {
	reducer := make(map[rune]struct{}, len(bad))
	for _, r := range bad {
		reducer[r] = struct{}{}
	}

	var sb strings.Builder
	sb.Grow(len(checking))
	for _, x := range checking {
		if _, skip := reducer[x]; !skip {
			sb.WriteRune(x)
		}
	}
	return sb.String()
}

// NFC - canonical composition: "e" + U+0301 --> "é"
func NFC(s string) string {
	return norm.NFC.String(s)
}

// FoldAccents - "Café naïve" --> "Cafe naive"
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	r, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return r
}

// SafeInput - trim, drop the bad chars, and cap the length of something a user typed
func SafeInput(s string, bad string, maxlen int) string {
	s = Purgechars(bad, strings.TrimSpace(s))
	r := []rune(s)
	if maxlen > 0 && len(r) > maxlen {
		r = r[:maxlen]
	}
	return string(r)
}
