package linkage

import "strings"

// Similarity returns the Jaro-Winkler similarity of two strings in [0,1].
// Used as the fallback when normalized keys do not match exactly; the
// threshold that decides a link is configuration, not a constant.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	jaro := jaroSimilarity(a, b)
	if jaro == 0 {
		return 0
	}

	// Winkler boost for a shared prefix, capped at 4 characters
	prefix := 0
	for i := 0; i < len(a) && i < len(b) && i < 4; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}

	const scaling = 0.1
	return jaro + float64(prefix)*scaling*(1.0-jaro)
}

func jaroSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	window := max(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	matchA := make([]bool, la)
	matchB := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if matchB[j] || ra[i] != rb[j] {
				continue
			}
			matchA[i] = true
			matchB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !matchA[i] {
			continue
		}
		for !matchB[j] {
			j++
		}
		if ra[i] != rb[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2.0
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3.0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TokenSortSimilarity compares two names with their tokens sorted first, so
// "nadal rafael" and "rafael nadal" score as identical. The linker uses the
// higher of the raw and token-sorted scores.
func TokenSortSimilarity(a, b string) float64 {
	return Similarity(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	// insertion sort; names have a handful of tokens
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j] < fields[j-1]; j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}
	return strings.Join(fields, " ")
}
