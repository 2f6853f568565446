package normalize

import "strings"

// ToDate reduces an ISO-8601 timestamp to its calendar-date prefix: the
// substring before the first 'T'. The result is not validated as a real
// calendar date. Nil and empty inputs pass through as nil.
func ToDate(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	return &s
}

// BoolToInt coerces a loosely-typed boolean to the store's integer encoding:
// true is 1, false is 0, anything else is nil.
func BoolToInt(v any) *int64 {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	var n int64
	if b {
		n = 1
	}
	return &n
}
