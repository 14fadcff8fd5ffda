package ruleset

import "fmt"

// ConfigError reports an out-of-range or mutually inconsistent RuleSet
// construction parameter: a named string type carrying the offending
// detail, rather than a single shared sentinel.
type ConfigError string

func (e ConfigError) Error() string { return "invalid rummikub config: " + string(e) }

func configErrorf(format string, args ...any) error {
	return ConfigError(fmt.Sprintf(format, args...))
}

// ErrBackendUnavailable is returned by NewRuleSet when handed a nil backend
// (and so by ruleengine.Engine.Get for an Engine built with a nil backend).
var ErrBackendUnavailable = fmt.Errorf("milp backend unavailable")
