package library

import "time"

// Raw is one record from the property list: a mapping from iTunes field
// name to a loose value. Depending on the plist type, a value decodes to
// a string, an integer (uint64 or int64), a float64, a bool, a
// time.Time, a []byte, or a nested map/slice.
//
// The accessors narrow a field to one concrete type. Each returns false
// when the field is absent or holds a different type, so a malformed
// field behaves exactly like a missing one.
type Raw map[string]any

// Has reports whether the field is present at all, regardless of type.
func (r Raw) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Raw) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// StringOr returns the field's string value, or fallback when the field
// is absent or not a string. Note that an empty string present in the
// document is returned as-is, not replaced.
func (r Raw) StringOr(key, fallback string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return fallback
}

// Int accepts any numeric concrete type the plist decoder produces.
func (r Raw) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case uint64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func (r Raw) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case uint64:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (r Raw) Bool(key string) (bool, bool) {
	b, ok := r[key].(bool)
	return b, ok
}

func (r Raw) Time(key string) (time.Time, bool) {
	t, ok := r[key].(time.Time)
	return t, ok
}

// IntPtr returns a pointer to the field's integer value, or nil when the
// field is absent. A present zero comes back as a non-nil pointer, which
// is how "explicitly rated zero" stays distinct from "never rated".
func (r Raw) IntPtr(key string) *int64 {
	if v, ok := r.Int(key); ok {
		return &v
	}
	return nil
}

func (r Raw) BoolPtr(key string) *bool {
	if v, ok := r.Bool(key); ok {
		return &v
	}
	return nil
}

func (r Raw) TimePtr(key string) *time.Time {
	if v, ok := r.Time(key); ok {
		return &v
	}
	return nil
}
