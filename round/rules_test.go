package round

import (
	"errors"
	"testing"
	"time"
)

func TestCompileWinRule(t *testing.T) {
	t.Run("empty_is_nil", func(t *testing.T) {
		rule, err := CompileWinRule("  ", "")
		if err != nil || rule != nil {
			t.Fatalf("CompileWinRule = %v, %v; want nil, nil", rule, err)
		}
	})

	t.Run("invalid_expression", func(t *testing.T) {
		if _, err := CompileWinRule("score >= ", ""); !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("err = %v, want ErrInvalidRule", err)
		}
	})

	t.Run("missing_script", func(t *testing.T) {
		if _, err := CompileWinRule("", "nope.tengo"); !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("err = %v, want ErrInvalidRule", err)
		}
	})
}

func TestWinRuleMet(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		script  string
		score   int
		health  int
		elapsed time.Duration
		want    bool
	}{
		{"score_below", "score >= 500", "", 499, 10, 0, false},
		{"score_reached", "score >= 500", "", 500, 10, 0, true},
		{"elapsed_seconds", "elapsed >= 120", "", 0, 10, 2 * time.Minute, true},
		{"elapsed_short", "elapsed >= 120", "", 0, 10, 119 * time.Second, false},
		{"combined", "score > 100 && health > 50", "", 101, 51, 0, true},
		{"marathon_script", "", "marathon.tengo", 20000, 1, 0, true},
		{"marathon_script_short", "", "marathon.tengo", 19999, 100, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := CompileWinRule(tc.expr, tc.script)
			if err != nil {
				t.Fatalf("CompileWinRule: %v", err)
			}
			got, err := rule.Met(tc.score, tc.health, tc.elapsed)
			if err != nil {
				t.Fatalf("Met: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Met = %v, want %v", got, tc.want)
			}
		})
	}
}
