package paged

// Node is one key/value node of the generic layout tree.
type Node = map[string]any

// RequireNumber returns the numeric value at key or a typed field error.
func RequireNumber(n Node, key string) (float64, error) {
	v, ok := n[key]
	if !ok {
		return 0, missingField(key, "number")
	}
	f, ok := asNumber(v)
	if !ok {
		return 0, invalidValue(key, "number", v)
	}
	return f, nil
}

// RequireString returns the string value at key or a typed field error.
func RequireString(n Node, key string) (string, error) {
	v, ok := n[key]
	if !ok {
		return "", missingField(key, "string")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidValue(key, "string", v)
	}
	return s, nil
}

// RequireArray returns the array value at key or a typed field error.
func RequireArray(n Node, key string) ([]any, error) {
	v, ok := n[key]
	if !ok {
		return nil, missingField(key, "array")
	}
	a, ok := v.([]any)
	if !ok {
		return nil, invalidValue(key, "array", v)
	}
	return a, nil
}

// RequireObject returns the object value at key or a typed field error.
func RequireObject(n Node, key string) (Node, error) {
	v, ok := n[key]
	if !ok {
		return nil, missingField(key, "object")
	}
	o, ok := v.(Node)
	if !ok {
		return nil, invalidValue(key, "object", v)
	}
	return o, nil
}

// Number returns the numeric value at key, reporting presence.
func Number(n Node, key string) (float64, bool) {
	v, ok := n[key]
	if !ok {
		return 0, false
	}
	return asNumber(v)
}

// String returns the string value at key, reporting presence.
func String(n Node, key string) (string, bool) {
	v, ok := n[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the boolean value at key, reporting presence.
func Bool(n Node, key string) (bool, bool) {
	v, ok := n[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Array returns the array value at key, reporting presence.
func Array(n Node, key string) ([]any, bool) {
	v, ok := n[key]
	if !ok {
		return nil, false
	}
	a, ok := v.([]any)
	return a, ok
}

// Object returns the object value at key, reporting presence.
func Object(n Node, key string) (Node, bool) {
	v, ok := n[key]
	if !ok {
		return nil, false
	}
	o, ok := v.(Node)
	return o, ok
}

// NumberOr returns the numeric value at key or def when absent or mistyped.
func NumberOr(n Node, key string, def float64) float64 {
	if f, ok := Number(n, key); ok {
		return f
	}
	return def
}

// StringOr returns the string value at key or def when absent or mistyped.
func StringOr(n Node, key string, def string) string {
	if s, ok := String(n, key); ok {
		return s
	}
	return def
}

// BoolOr returns the boolean value at key or def when absent or mistyped.
func BoolOr(n Node, key string, def bool) bool {
	if b, ok := Bool(n, key); ok {
		return b
	}
	return def
}

// firstValue walks an alias chain and returns the first present value.
func firstValue(n Node, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := n[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// firstString walks an alias chain and returns the first non-empty string.
func firstString(n Node, keys ...string) string {
	for _, key := range keys {
		if s, ok := String(n, key); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstStringOr(n Node, def string, keys ...string) string {
	if s := firstString(n, keys...); s != "" {
		return s
	}
	return def
}

func firstNumber(n Node, keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, ok := Number(n, key); ok {
			return f, true
		}
	}
	return 0, false
}

func firstNumberOr(n Node, def float64, keys ...string) float64 {
	if f, ok := firstNumber(n, keys...); ok {
		return f
	}
	return def
}

func firstBoolOr(n Node, def bool, keys ...string) bool {
	for _, key := range keys {
		if b, ok := Bool(n, key); ok {
			return b
		}
	}
	return def
}

// asNumber accepts the numeric kinds a generic decoder may produce.
func asNumber(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	default:
		return 0, false
	}
}
