package fuzzy

// Jaro computes the Jaro similarity of two strings. Characters match when
// they are equal and no further apart than the match window,
// floor(max(len1,len2)/2) − 1. The score combines the match counts of
// both strings with the transposition count among matched characters.
// Returns 0 when either string is empty or no characters match.
func Jaro(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	window := maxInt(len(ra), len(rb))/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, len(ra))
	bMatched := make([]bool, len(rb))

	matches := 0
	for i := range ra {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > len(rb) {
			hi = len(rb)
		}
		for j := lo; j < hi; j++ {
			if bMatched[j] || ra[i] != rb[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Count transpositions among matched characters.
	transpositions := 0
	j := 0
	for i := range ra {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if ra[i] != rb[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions)
	return (m/float64(len(ra)) + m/float64(len(rb)) + (m-t/2)/m) / 3
}

// JaroWinkler computes the Jaro-Winkler similarity: the Jaro score plus a
// common-prefix bonus of 0.1 × min(prefix,4) × (1 − jaro), applied only
// when the Jaro score is at least 0.7.
func JaroWinkler(a, b string) float64 {
	jaro := Jaro(a, b)
	if jaro < 0.7 {
		return jaro
	}

	ra := []rune(a)
	rb := []rune(b)
	prefix := 0
	for i := 0; i < len(ra) && i < len(rb) && prefix < 4; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	return jaro + 0.1*float64(prefix)*(1-jaro)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
