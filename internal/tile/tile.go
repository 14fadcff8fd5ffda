// Package tile implements the generalized Rummikub tile universe described
// in the engine's rule parameters: N numbers, C colours, plus an optional
// joker identifier.
//
// Encoding rules:
//   - numbered tiles are 1-based identifiers in [1, N*C]
//   - tile i in that range has colour floor((i-1)/N) and face value
//     ((i-1) mod N) + 1
//   - the joker, if jokers > 0, is the single identifier N*C+1
package tile

import (
	"fmt"
	"sort"
)

// Tile is an atomic game piece, identified by a 1-based integer. With N up
// to 26 and C up to 8 plus a joker the universe can hold up to 209
// identifiers, and solver-internal tile x set incidence matrices index by
// Tile, so an int rather than a byte.
type Tile int

// colourLetters names the up-to-eight colours (black, blue, orange, red,
// green, magenta, white, cyan), used only for String() rendering. Tile-name
// parsing is a consumer concern and lives outside this module.
var colourLetters = [...]byte{'k', 'b', 'o', 'r', 'g', 'm', 'w', 'c'}

const jokerLetter = 'j'

// Colour returns the zero-based colour index of a numbered tile.
// The result is meaningless for a joker; check IsJoker first.
func (t Tile) Colour(numbers int) int {
	return int(t-1) / numbers
}

// FaceValue returns the 1-based face value of a numbered tile.
// The result is meaningless for a joker; check IsJoker first.
func (t Tile) FaceValue(numbers int) int {
	return int(t-1)%numbers + 1
}

// String renders a tile using the colour-letter + number shorthand (e.g.
// "k9" for black 9, "j" for joker). Numbers is required to decode the
// identifier; colours beyond the 8 named ones fall back to '?'.
func (t Tile) String(numbers, jokerID int) string {
	if jokerID != 0 && int(t) == jokerID {
		return string(jokerLetter)
	}
	c := t.Colour(numbers)
	letter := byte('?')
	if c >= 0 && c < len(colourLetters) {
		letter = colourLetters[c]
	}
	return fmt.Sprintf("%c%d", letter, t.FaceValue(numbers))
}

// List is a sequence of tile identifiers. It is not a deck to draw from; it
// backs rack/table element views derived from the multiset counts.
type List []Tile

// Sorted returns a sorted copy of the list.
func (l List) Sorted() List {
	out := make(List, len(l))
	copy(out, l)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l List) String(numbers, jokerID int) string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = t.String(numbers, jokerID)
	}
	return fmt.Sprint(parts)
}
