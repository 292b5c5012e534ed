package fuzzy

import (
	"strings"
	"unicode"
)

// soundexClass maps a letter to its phonetic digit class: labials (1),
// gutturals/sibilants (2), dentals (3), L (4), nasals (5), R (6).
// Vowels, H, W, and Y return 0 and emit nothing.
func soundexClass(r rune) byte {
	switch r {
	case 'B', 'F', 'P', 'V':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	default:
		return 0
	}
}

// Soundex computes the 4-character Soundex phonetic code of a string: the
// first letter kept as-is, subsequent letters mapped to digit classes,
// consecutive same-class letters collapsed, and the result padded with
// zeros to length 4. Non-letter characters are ignored; an input with no
// letters yields the empty string.
func Soundex(s string) string {
	letters := make([]rune, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) && r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var code strings.Builder
	code.WriteRune(letters[0])
	prev := soundexClass(letters[0])

	for _, r := range letters[1:] {
		if code.Len() == 4 {
			break
		}
		class := soundexClass(r)
		switch {
		case class == 0:
			// H and W are transparent; vowels and Y break a run so the
			// same class can repeat after them.
			if r != 'H' && r != 'W' {
				prev = 0
			}
		case class != prev:
			code.WriteByte(class)
			prev = class
		}
	}

	result := code.String()
	for len(result) < 4 {
		result += "0"
	}
	return result
}
