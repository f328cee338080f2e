package round

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ketchup/prefabs"
)

var ErrInvalidRule = errors.New("round: invalid win rule")

const wonVar = "won"

// WinRule evaluates a compiled tengo win condition. The script sees score,
// health and elapsed (seconds) and must set won.
type WinRule struct {
	compiled *tengo.Compiled
	source   string
}

// CompileWinRule builds a rule from an inline expression or a script name.
// It returns nil when neither is set.
func CompileWinRule(expr, scriptName string) (*WinRule, error) {
	expr = strings.TrimSpace(expr)
	var src string
	switch {
	case scriptName != "":
		data, err := prefabs.LoadScript(scriptName)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s: %v", ErrInvalidRule, scriptName, err)
		}
		src = string(data)
	case expr != "":
		src = fmt.Sprintf("%s := (%s)", wonVar, expr)
	default:
		return nil, nil
	}

	script := tengo.NewScript([]byte(src))
	_ = script.Add("score", 0)
	_ = script.Add("health", 0)
	_ = script.Add("elapsed", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	rule := &WinRule{compiled: compiled, source: src}
	if _, err := rule.Met(0, 1, 0); err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *WinRule) Met(score, health int, elapsed time.Duration) (bool, error) {
	if r == nil || r.compiled == nil {
		return false, nil
	}
	if err := r.compiled.Set("score", score); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if err := r.compiled.Set("health", health); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if err := r.compiled.Set("elapsed", elapsed.Seconds()); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if err := r.compiled.Run(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if !r.compiled.IsDefined(wonVar) {
		return false, fmt.Errorf("%w: script does not set %s", ErrInvalidRule, wonVar)
	}
	return r.compiled.Get(wonVar).Bool(), nil
}

func (r *WinRule) String() string {
	if r == nil {
		return ""
	}
	return r.source
}
