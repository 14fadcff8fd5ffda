package ruleset

import "fmt"

// Config holds the parameters that define one generalized Rummikub rule set.
type Config struct {
	Numbers         int // N: distinct face values per colour
	Repeats         int // R: copies of each numbered tile
	Colours         int // C: number of colours
	Jokers          int // J: number of jokers
	MinLen          int // L: minimum set length
	MinInitialValue int // V: minimum initial-meld score
}

// DefaultConfig is the standard Rummikub rule shape: 13 numbers, 2 repeats,
// 4 colours, 2 jokers, minimum set length 3, minimum initial value 30.
func DefaultConfig() Config {
	return Config{
		Numbers:         13,
		Repeats:         2,
		Colours:         4,
		Jokers:          2,
		MinLen:          3,
		MinInitialValue: 30,
	}
}

// GameStateKeyFor derives the game_state_key for a configuration without
// constructing a RuleSet. Only (N, R, C, J) participate: min_len and
// min_initial_value don't change which tiles exist, so they don't affect
// snapshot compatibility. internal/ruleengine uses this to key its RuleSet
// cache before paying the cost of set enumeration.
func GameStateKeyFor(cfg Config) string {
	return fmt.Sprintf("n%dr%dc%dj%d", cfg.Numbers, cfg.Repeats, cfg.Colours, cfg.Jokers)
}

func (c Config) validate() error {
	if c.Numbers < 2 || c.Numbers > 26 {
		return configErrorf("numbers must be in [2, 26], got %d", c.Numbers)
	}
	if c.Repeats < 1 || c.Repeats > 4 {
		return configErrorf("repeats must be in [1, 4], got %d", c.Repeats)
	}
	if c.Colours < 2 || c.Colours > 8 {
		return configErrorf("colours must be in [2, 8], got %d", c.Colours)
	}
	if c.Jokers < 0 || c.Jokers > 4 {
		return configErrorf("jokers must be in [0, 4], got %d", c.Jokers)
	}
	if c.MinLen < 2 || c.MinLen > 6 {
		return configErrorf("min_len must be in [2, 6], got %d", c.MinLen)
	}
	if c.MinInitialValue < 1 || c.MinInitialValue > 50 {
		return configErrorf("min_initial_value must be in [1, 50], got %d", c.MinInitialValue)
	}
	if c.MinLen > c.Colours {
		return configErrorf("min_len (%d) > colours (%d): groups would be impossible", c.MinLen, c.Colours)
	}
	if c.MinLen > c.Numbers {
		return configErrorf("min_len (%d) > numbers (%d): runs would be impossible", c.MinLen, c.Numbers)
	}
	return nil
}
