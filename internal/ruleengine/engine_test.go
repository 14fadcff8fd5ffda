package ruleengine

import (
	"testing"

	"rummikub-lite/internal/milp"
	"rummikub-lite/internal/ruleset"
)

func TestEngine_CachesByRuleShape(t *testing.T) {
	e, err := New(milp.NewGonumBackend())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := ruleset.DefaultConfig()
	rs1, err := e.Get(cfg)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rs2, err := e.Get(cfg)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rs1 != rs2 {
		t.Fatalf("expected the same cached *RuleSet pointer for identical config")
	}
	if e.Len() != 1 {
		t.Fatalf("expected 1 cached shape, got %d", e.Len())
	}

	cfg2 := cfg
	cfg2.MinLen = 4
	rs3, err := e.Get(cfg2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rs3 == rs1 {
		t.Fatalf("expected a distinct RuleSet for a different min_len")
	}
	if e.Len() != 2 {
		t.Fatalf("expected 2 cached shapes, got %d", e.Len())
	}
}
