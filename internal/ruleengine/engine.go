// Package ruleengine caches constructed RuleSets keyed by rule shape, so a
// process serving many concurrent games with a handful of distinct rule
// configurations does not re-enumerate sets or rebuild the tile x set
// incidence matrix per request — the expensive part of ruleset.NewRuleSet.
// The ILP problem itself is not cached: each solve assembles a fresh one
// around the cached matrix. An LRU rather than a
// plain map: the key space (distinct rule configurations a deployment
// actually uses) is naturally small but unbounded in principle (a
// misbehaving caller could mint new configurations forever).
package ruleengine

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"rummikub-lite/internal/milp"
	"rummikub-lite/internal/ruleset"
)

// defaultCacheSize bounds how many distinct (numbers, repeats, colours,
// jokers, min_len, min_initial_value) shapes stay enumerated at once.
const defaultCacheSize = 32

// Engine builds and caches ruleset.RuleSet instances.
type Engine struct {
	backend milp.Backend
	cache   *lru.Cache[string, *ruleset.RuleSet]
}

// New returns an Engine that builds RuleSets against the given MILP
// backend, caching up to defaultCacheSize distinct rule shapes.
func New(backend milp.Backend) (*Engine, error) {
	return NewSized(backend, defaultCacheSize)
}

// NewSized is New with an explicit cache capacity.
func NewSized(backend milp.Backend, size int) (*Engine, error) {
	c, err := lru.New[string, *ruleset.RuleSet](size)
	if err != nil {
		return nil, err
	}
	return &Engine{backend: backend, cache: c}, nil
}

// cacheKey extends the game_state_key (which alone identifies tile-universe
// compatibility) with min_len/min_initial_value, since those change which
// RuleSet.Sets/set_values were enumerated even though they don't change
// game-state compatibility.
func cacheKey(cfg ruleset.Config) string {
	return fmt.Sprintf("%s/l%dv%d", ruleset.GameStateKeyFor(cfg), cfg.MinLen, cfg.MinInitialValue)
}

// Get returns the cached RuleSet for cfg, building and caching one on first
// request for that shape.
func (e *Engine) Get(cfg ruleset.Config) (*ruleset.RuleSet, error) {
	key := cacheKey(cfg)
	if rs, ok := e.cache.Get(key); ok {
		return rs, nil
	}
	rs, err := ruleset.NewRuleSet(cfg, e.backend)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, rs)
	return rs, nil
}

// Len returns how many distinct rule shapes are currently cached.
func (e *Engine) Len() int { return e.cache.Len() }
