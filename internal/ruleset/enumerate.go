package ruleset

import "sort"

// rawSet is a generated candidate set, tile identifiers in the exact order
// produced by enumeration (not globally re-sorted). For minimum-length sets
// and groups this order happens to be ascending by identifier (since the
// joker identifier is always the largest in the universe and is appended
// after the chosen base tiles); for longer runs with an "inner" joker
// substitution the stored order is (first, inner-selection, last), which can
// place a joker identifier before the run's last base tile. The same
// multiset of tiles always arises in exactly one tuple order (a longer run's
// ends pin its base, and interchangeable jokers produce literally identical
// tuples), so plain tuple-value equality suffices for multiset dedup.
type rawSet []int

// enumerateSets builds the full canonical, deduplicated, lexicographically
// sorted set list for the given configuration and joker identifier (0 if
// there are no jokers).
func enumerateSets(cfg Config, jokerID int) []rawSet {
	runs := combineWithJokers(generateRuns(cfg), cfg, jokerID, true)
	groups := combineWithJokers(generateGroups(cfg), cfg, jokerID, false)

	seen := make(map[string]bool, len(runs)+len(groups))
	var all []rawSet
	for _, s := range append(runs, groups...) {
		k := rawSetKey(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		all = append(all, s)
	}

	sortRawSets(all)
	return all
}

// generateRuns produces, for each colour and each run length in
// [minLen, 2*minLen), every contiguous run of that length and colour.
func generateRuns(cfg Config) []rawSet {
	var out []rawSet
	n := cfg.Numbers
	for c := 0; c < cfg.Colours; c++ {
		for length := cfg.MinLen; length < cfg.MinLen*2; length++ {
			for start := 1; start <= n-length+1; start++ {
				run := make(rawSet, length)
				for i := 0; i < length; i++ {
					run[i] = n*c + start + i
				}
				out = append(out, run)
			}
		}
	}
	return out
}

// generateGroups produces, for each face value, every combination of
// colours of length in [minLen, colours] of the full group of that value.
func generateGroups(cfg Config) []rawSet {
	var out []rawSet
	n, colours := cfg.Numbers, cfg.Colours
	for num := 1; num <= n; num++ {
		fullGroup := make([]int, colours)
		for c := 0; c < colours; c++ {
			fullGroup[c] = num + n*c
		}
		for length := cfg.MinLen; length <= colours; length++ {
			for _, combo := range combinationsInt(fullGroup, length) {
				out = append(out, rawSet(combo))
			}
		}
	}
	return out
}

// combineWithJokers expands each generated base set with joker
// substitutions. Sets of exactly minLen combine freely with the joker pool;
// longer sets only add "inner" joker substitutions for runs (keeping the
// first and last tile fixed), and no substitutions at all for groups — an
// end-of-run or surplus-group joker is always free for the taking, so those
// arrangements would only bloat the search space.
func combineWithJokers(sets []rawSet, cfg Config, jokerID int, isRun bool) []rawSet {
	if cfg.Jokers == 0 || jokerID == 0 {
		out := make([]rawSet, len(sets))
		copy(out, sets)
		return out
	}

	jokers := make([]int, cfg.Jokers)
	for i := range jokers {
		jokers[i] = jokerID
	}

	var out []rawSet
	for _, s := range sets {
		if len(s) == cfg.MinLen {
			pool := append(append([]int(nil), s...), jokers...)
			for _, combo := range combinationsInt(pool, len(s)) {
				out = append(out, rawSet(combo))
			}
			continue
		}
		if !isRun {
			// Longer groups never get joker substitutions: a joker in a
			// longer-than-minimum group is always surplus.
			out = append(out, append(rawSet(nil), s...))
			continue
		}
		// Longer runs: only "inner" substitutions, keeping the two ends.
		inner := s[1 : len(s)-1]
		pool := append(append([]int(nil), inner...), jokers...)
		for _, combo := range combinationsInt(pool, len(inner)) {
			tuple := make(rawSet, 0, len(s))
			tuple = append(tuple, s[0])
			tuple = append(tuple, combo...)
			tuple = append(tuple, s[len(s)-1])
			out = append(out, tuple)
		}
	}
	return out
}

// combinationsInt returns every length-k combination of items, preserving
// the relative order of the source slice.
func combinationsInt(items []int, k int) [][]int {
	n := len(items)
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}

	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]int, k)
		for i, j := range idx {
			combo[i] = items[j]
		}
		out = append(out, combo)

		// advance idx to the next combination, odometer-style from the right
		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

func rawSetKey(s rawSet) string {
	// Fixed-width encoding avoids separator ambiguity; identifiers are
	// always small (<= 209 for the widest permitted configuration).
	buf := make([]byte, 0, len(s)*4)
	for _, t := range s {
		buf = append(buf, byte(t>>8), byte(t), ',')
	}
	return string(buf)
}

// sortRawSets orders sets lexicographically by tile identifier
// (element-wise, shorter-is-less on a common prefix). |S| can reach the
// hundreds of thousands for worst-case configurations.
func sortRawSets(sets []rawSet) {
	sort.Slice(sets, func(i, j int) bool {
		a, b := sets[i], sets[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
