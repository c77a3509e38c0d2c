package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Strategy selects how the JSON object candidate is located in model output.
type Strategy string

const (
	// StrategyGreedy takes the span from the leftmost '{' to the rightmost '}'.
	StrategyGreedy Strategy = "greedy"
	// StrategyBalanced takes the first brace-balanced object starting at the leftmost '{'.
	StrategyBalanced Strategy = "balanced"
)

// ParseStrategy converts a config value into a Strategy.
// The empty string selects StrategyGreedy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyGreedy:
		return StrategyGreedy, nil
	case StrategyBalanced:
		return StrategyBalanced, nil
	default:
		return "", fmt.Errorf("unknown extractor strategy %q (want %q or %q)", s, StrategyGreedy, StrategyBalanced)
	}
}

// Extract runs the strategy's span search over raw.
func (s Strategy) Extract(raw string) Record {
	rec, _ := s.Analyze(raw)
	return rec
}

// Analyze is Extract plus the schema drift of the decoded object. Drift is
// computed before values are stringified, so a number or null where the
// schema wants a string is reported even though the Record holds text.
func (s Strategy) Analyze(raw string) (Record, []string) {
	span, ok := s.span(raw)
	if !ok {
		return Record{}, nil
	}
	doc := decodeObject(span)
	if doc == nil {
		return Record{}, nil
	}
	return toRecord(doc), Drift(doc)
}

func (s Strategy) span(raw string) (string, bool) {
	if s == StrategyBalanced {
		return balancedSpan(raw)
	}
	return greedySpan(raw)
}

// Extract recovers a Record from raw model output.
//
// The candidate is the span from the leftmost '{' to the rightmost '}', which
// skips surrounding prose and code fences. Extract never fails: no span or
// invalid JSON yields an empty Record. Keys are passed through as-is; no
// schema filtering or defaulting happens here.
func Extract(raw string) Record {
	return StrategyGreedy.Extract(raw)
}

// ExtractBalanced is like Extract but stops at the brace that closes the
// leftmost '{', honoring JSON string quoting. Trailing text containing stray
// '}' characters therefore does not corrupt the candidate.
func ExtractBalanced(raw string) Record {
	return StrategyBalanced.Extract(raw)
}

func greedySpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func balancedSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeObject decodes span as a JSON object with numbers kept exact.
// Any decode error yields nil.
func decodeObject(span string) map[string]any {
	// Valid also rejects trailing data, e.g. `{...} see above}`.
	if !json.Valid([]byte(span)) {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(span))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil
	}
	return obj
}

func toRecord(doc map[string]any) Record {
	rec := make(Record, len(doc))
	for k, v := range doc {
		rec[k] = stringify(v)
	}
	return rec
}

// stringify renders a decoded JSON value as display text.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSpace(buf.String())
	}
}
