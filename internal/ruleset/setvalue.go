package ruleset

// runLengthValues precomputes rlmax[length][minFace], the maximum possible
// tile-value sum of a length-`length` run whose lowest non-joker face value
// is `minFace`, by the recurrence
//
//	rlmax[1][m] = m
//	rlmax[l+1][m] = rlmax[l][m] + (m+l while m <= N-l, else N-l)
//
// Once m+l exceeds N the run is pinned against the top face value, so the
// extra positions fall below m and each adds N-l (N-1, N-2, ...).
func runLengthValues(numbers, minLen int) [][]int {
	levels := minLen * 2
	rl := make([][]int, levels)
	rl[0] = make([]int, numbers+1)
	for l := 0; l < levels-1; l++ {
		tiles := make([]int, numbers+1)
		for p := 0; p <= numbers; p++ {
			if p <= numbers-l {
				tiles[p] = l + p
			} else {
				tiles[p] = numbers - l
			}
		}
		rl[l+1] = make([]int, numbers+1)
		for m := 0; m <= numbers; m++ {
			rl[l+1][m] = rl[l][m] + tiles[m]
		}
	}
	return rl
}

// setValue computes the score a set contributes toward the initial-meld
// threshold: jokers count as the face value they most plausibly stand for.
// jokerID is 0 when the ruleset has no jokers.
func setValue(s rawSet, numbers, jokerID int, rlmax [][]int) int {
	k := len(s)

	var nonjokers []int
	for _, t := range s {
		if t == jokerID {
			continue
		}
		nonjokers = append(nonjokers, ((t-1)%numbers)+1)
	}
	sortInts(nonjokers)

	if len(nonjokers) == 0 {
		// Unreachable for enumerated sets: length >= minLen >= 2 with at
		// most 4 jokers always leaves at least one non-joker. Scored 0
		// rather than panicking on a malformed set.
		return 0
	}

	n0 := nonjokers[0]
	if len(nonjokers) == 1 {
		return max(k*n0, rlmax[k][n0])
	}
	if nonjokers[1] == n0 {
		// All equal: a group of n0s.
		return k * n0
	}
	// A run whose lowest non-joker is n0.
	return rlmax[k][n0]
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
