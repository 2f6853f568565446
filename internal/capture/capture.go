// Package capture reads and locates recorded API responses from a portal
// export directory. Each source file is a JSON array of captures, one per
// recorded request, tagged with the URL that produced it.
package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Capture is one recorded API response: the request URL and the decoded
// response body, whose shape varies by endpoint.
type Capture struct {
	URL  string `json:"url"`
	Body any    `json:"body"`
}

// Store loads capture files from a single export directory.
type Store struct {
	Dir string
}

// Load reads the capture file for a catalog source. A missing file is a
// normal condition and yields (nil, nil); only unreadable or unparseable
// files return an error.
func (s *Store) Load(name string) ([]Capture, error) {
	src, ok := SourceByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, src.File))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", src.File, err)
	}
	var caps []Capture
	if err := json.Unmarshal(data, &caps); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.File, err)
	}
	return caps, nil
}

// Predicate is a shape check applied to a capture body. Several endpoints
// share URL prefixes but answer with different body shapes depending on the
// request parameters, so a substring match alone is ambiguous.
type Predicate func(body any) bool

// BodyIsArray matches captures whose body is a JSON array.
func BodyIsArray(body any) bool {
	_, ok := body.([]any)
	return ok
}

// BodyHasField matches captures whose body is a JSON object carrying the
// named field with a non-null value.
func BodyHasField(name string) Predicate {
	return func(body any) bool {
		m, ok := body.(map[string]any)
		if !ok {
			return false
		}
		v, ok := m[name]
		return ok && v != nil
	}
}

// Find returns the first capture whose URL contains urlPart (case-sensitive)
// and whose body satisfies every predicate. Returns nil when captures is nil
// or nothing matches; absence is not an error.
func Find(captures []Capture, urlPart string, preds ...Predicate) *Capture {
	for i := range captures {
		if !strings.Contains(captures[i].URL, urlPart) {
			continue
		}
		ok := true
		for _, p := range preds {
			if !p(captures[i].Body) {
				ok = false
				break
			}
		}
		if ok {
			return &captures[i]
		}
	}
	return nil
}
