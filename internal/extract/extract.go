// Package extract pulls candidate action item records out of raw LLM text.
//
// Model replies are frequently wrapped in commentary or markdown code
// fences, so extraction is best-effort rather than strict: the text is
// scanned for the outermost JSON list first, falling back to a single JSON
// object. Field validation belongs to the reconciler, not here.
package extract

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoStructuredContent signals that no decodable JSON list or object was
// found in the reply. Callers treat it as "nothing usable this run", not as
// a fatal condition.
var ErrNoStructuredContent = errors.New("no usable structured content in response")

// Candidate is one unvalidated record extracted from LLM output. A nil
// Candidate stands in for a list element that was not an object; the
// reconciler skips those.
type Candidate map[string]any

// Field returns the string value stored under key, if present and a string.
func (c Candidate) Field(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c Candidate) ID() (string, bool)       { return c.Field("id") }
func (c Candidate) Task() (string, bool)     { return c.Field("task") }
func (c Candidate) Owner() (string, bool)    { return c.Field("owner") }
func (c Candidate) Deadline() (string, bool) { return c.Field("deadline") }
func (c Candidate) Status() (string, bool)   { return c.Field("status") }

// Candidates extracts candidate records from raw text.
//
// Precedence: the slice between the first '[' and the last ']' is decoded
// as a list; if that fails, the slice between the first '{' and the last
// '}' is decoded as a single object and wrapped in a one-element list. An
// empty JSON list yields an empty (non-nil) slice. When neither shape
// decodes, ErrNoStructuredContent is returned.
func Candidates(raw string) ([]Candidate, error) {
	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start != -1 && end > start {
		var elems []any
		if err := json.Unmarshal([]byte(raw[start:end+1]), &elems); err == nil {
			out := make([]Candidate, 0, len(elems))
			for _, e := range elems {
				obj, _ := e.(map[string]any)
				out = append(out, Candidate(obj))
			}
			return out, nil
		}
	}

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err == nil {
			return []Candidate{Candidate(obj)}, nil
		}
	}

	return nil, ErrNoStructuredContent
}
