package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxRuleValue bounds writeColor and nextState. Larger integers do not
// survive a trip through a JSON number exactly.
const MaxRuleValue = 1<<53 - 1

// Result carries every problem found in a rule document.
type Result struct {
	Valid  bool
	Errors []string
}

func (r *Result) addf(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// ValidationError wraps a failed Result so it can travel as an error.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid rules: " + strings.Join(e.Errors, "; ")
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// ValidateJSON decodes data and validates the resulting document.
func ValidateJSON(data []byte) Result {
	raw, err := decodeRaw(data)
	if err != nil {
		res := Result{}
		res.addf("Invalid JSON: %v", err)
		return res
	}
	return Validate(raw)
}

// Validate checks a decoded JSON document for the rule table shape. It keeps
// going after the first problem and reports all of them.
func Validate(raw any) Result {
	res := Result{Valid: true}
	doc, ok := raw.(map[string]any)
	if !ok || doc == nil {
		res.addf("Rules must be an object")
		return res
	}
	if len(doc) == 0 {
		res.addf("Rules must contain at least one state")
		return res
	}
	seen := make(map[int]string, len(doc))
	for _, key := range sortedKeys(doc) {
		state, ok := parseStateKey(key)
		if !ok {
			res.addf("Invalid state key: %s", key)
			continue
		}
		if prev, dup := seen[state]; dup {
			res.addf("Duplicate state key: %s (same state as %s)", key, prev)
			continue
		}
		seen[state] = key
		row, ok := doc[key].([]any)
		if !ok {
			res.addf("State %s rules must be an array", key)
			continue
		}
		if len(row) == 0 {
			res.addf("State %s must have at least one rule", key)
			continue
		}
		for color, entry := range row {
			rule, ok := entry.(map[string]any)
			if !ok || rule == nil {
				res.addf("State %s, color %d: rule must be an object", key, color)
				continue
			}
			if v, ok := integral(rule["writeColor"]); !ok || v < 0 {
				res.addf("State %s, color %d: writeColor must be a non-negative integer", key, color)
			} else if v > MaxRuleValue {
				res.addf("State %s, color %d: writeColor must be at most %d", key, color, MaxRuleValue)
			}
			if code, ok := rule["move"].(string); !ok {
				res.addf("State %s, color %d: move must be one of %s", key, color, moveCodeList)
			} else if _, ok := ParseMove(code); !ok {
				res.addf("State %s, color %d: move must be one of %s", key, color, moveCodeList)
			}
			if v, ok := integral(rule["nextState"]); !ok || v < HaltState {
				res.addf("State %s, color %d: nextState must be an integer >= %d", key, color, HaltState)
			} else if v > MaxRuleValue {
				res.addf("State %s, color %d: nextState must be at most %d", key, color, MaxRuleValue)
			}
		}
	}
	return res
}

// Validate runs the document checks against a typed table.
func (t Table) Validate() Result {
	res := Result{Valid: true}
	if len(t) == 0 {
		res.addf("Rules must contain at least one state")
		return res
	}
	for _, s := range t.States() {
		if s < 0 || s > MaxRuleValue {
			res.addf("Invalid state key: %d", s)
			continue
		}
		row := t[s]
		if len(row) == 0 {
			res.addf("State %d must have at least one rule", s)
			continue
		}
		for color, r := range row {
			if r.WriteColor < 0 {
				res.addf("State %d, color %d: writeColor must be a non-negative integer", s, color)
			} else if r.WriteColor > MaxRuleValue {
				res.addf("State %d, color %d: writeColor must be at most %d", s, color, MaxRuleValue)
			}
			if !r.Move.Valid() {
				res.addf("State %d, color %d: move must be one of %s", s, color, moveCodeList)
			}
			if r.NextState < HaltState {
				res.addf("State %d, color %d: nextState must be an integer >= %d", s, color, HaltState)
			} else if r.NextState > MaxRuleValue {
				res.addf("State %d, color %d: nextState must be at most %d", s, color, MaxRuleValue)
			}
		}
	}
	return res
}

// Decode parses and validates a JSON rule document.
func Decode(data []byte) (Table, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("Invalid JSON: %v", err)}}
	}
	if err := Validate(raw).Err(); err != nil {
		return nil, err
	}
	return convert(raw.(map[string]any)), nil
}

// convert assumes doc already passed Validate.
func convert(doc map[string]any) Table {
	t := make(Table, len(doc))
	for key, v := range doc {
		s, _ := parseStateKey(key)
		entries := v.([]any)
		row := make([]Rule, len(entries))
		for i, e := range entries {
			m := e.(map[string]any)
			wc, _ := integral(m["writeColor"])
			ns, _ := integral(m["nextState"])
			mv, _ := ParseMove(m["move"].(string))
			row[i] = Rule{WriteColor: wc, Move: mv, NextState: ns}
		}
		t[s] = row
	}
	return t
}

func decodeRaw(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after document")
	}
	return raw, nil
}

// parseStateKey accepts decimal digit strings, leading zeros included, so
// "01" names state 1.
func parseStateKey(key string) (int, bool) {
	if key == "" || strings.TrimLeft(key, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n > MaxRuleValue {
		return 0, false
	}
	return n, true
}

// integral converts a JSON number holding an integer. Magnitudes past
// MaxRuleValue come back as ±(MaxRuleValue+1) so callers can reject them
// without overflowing int.
func integral(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if math.Abs(f) > MaxRuleValue {
		return int(math.Copysign(MaxRuleValue+1, f)), true
	}
	return int(f), true
}

// sortedKeys orders numeric keys numerically and everything else after them.
func sortedKeys(doc map[string]any) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		na, okA := parseStateKey(a)
		nb, okB := parseStateKey(b)
		switch {
		case okA && okB:
			return na - nb
		case okA:
			return -1
		case okB:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}
