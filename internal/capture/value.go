package capture

// Loose accessors over decoded JSON values. Located capture bodies are not
// schema-validated; a missing or differently-typed field reads as nil so an
// importer emits a null column instead of aborting.

// Obj returns v as a JSON object, or nil.
func Obj(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Arr returns v as a JSON array, or nil.
func Arr(v any) []any {
	a, _ := v.([]any)
	return a
}

// Field returns the named field of v when v is an object, else nil.
func Field(v any, name string) any {
	m := Obj(v)
	if m == nil {
		return nil
	}
	return m[name]
}

// Str returns the named field as a string pointer; nil when absent, null,
// not a string, or empty.
func Str(v any, name string) *string {
	s, ok := Field(v, name).(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// Float returns the named field as a float pointer; nil when absent or not
// a number.
func Float(v any, name string) *float64 {
	f, ok := Field(v, name).(float64)
	if !ok {
		return nil
	}
	return &f
}

// Int returns the named field as an int pointer; JSON numbers decode as
// float64 and are truncated toward zero.
func Int(v any, name string) *int64 {
	f, ok := Field(v, name).(float64)
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}
