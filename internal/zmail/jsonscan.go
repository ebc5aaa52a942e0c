package zmail

import (
	"encoding/json"
	"errors"
)

// ErrNoJSONObject is returned when helper output contains no balanced JSON
// object at all.
var ErrNoJSONObject = errors.New("no JSON object found in output")

// ExtractJSONObject returns the first balanced {...} block in b. Helper
// output interleaves spinner and status lines with the response body, so the
// scan starts at each '{' and tracks brace depth, honoring strings and
// escapes, until the object closes. Candidates that fail json.Valid are
// skipped (e.g. a stray '{' inside log text).
func ExtractJSONObject(b []byte) ([]byte, error) {
	for start := 0; start < len(b); start++ {
		if b[start] != '{' {
			continue
		}

		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(b); i++ {
			c := b[i]
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
					candidate := b[start : i+1]
					if json.Valid(candidate) {
						return candidate, nil
					}
					i = len(b) // abandon this start position
				}
			}
		}
	}
	return nil, ErrNoJSONObject
}
