package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var commentLine = regexp.MustCompile(`(?m)^\s*//.*$`)

// Format renders t as editable text: comment headers followed by indented
// JSON. presetName is omitted from the header when empty.
func Format(t Table, presetName string) string {
	var b strings.Builder
	if presetName != "" {
		fmt.Fprintf(&b, "// Preset: %s\n", presetName)
	}
	fmt.Fprintf(&b, "// States: %d\n", t.NumStates())
	fmt.Fprintf(&b, "// Colors: %d\n", t.NumColors())
	fmt.Fprintf(&b, "// Moves: %s\n\n", MoveLegend)
	body, err := indentJSON(t)
	if err != nil {
		b.WriteString("{}")
		return b.String()
	}
	b.Write(body)
	return b.String()
}

// ParseText strips comment lines from text and decodes the remaining JSON.
// On any failure the table is nil and the error lists what went wrong.
func ParseText(text string) (Table, error) {
	body := strings.TrimSpace(commentLine.ReplaceAllString(text, ""))
	if body == "" {
		return nil, &ValidationError{Errors: []string{"Rules text is empty"}}
	}
	return Decode([]byte(body))
}

func indentJSON(t Table) ([]byte, error) {
	compact, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
