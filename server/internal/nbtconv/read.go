package nbtconv

// Int64 reads an integer stored under k in m. Every integer type produced by
// NBT decoding is widened without loss. Zero is returned if the key is absent.
func Int64(m map[string]any, k string) int64 {
	switch v := m[k].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case uint8:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}

// Uint8 reads a uint8 stored under k in m.
func Uint8(m map[string]any, k string) uint8 {
	switch v := m[k].(type) {
	case uint8:
		return v
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// Bool reads a boolean from m. NBT has no boolean tag, so values decoded from
// disk come back as a byte.
func Bool(m map[string]any, k string) bool {
	return Uint8(m, k) == 1
}

// String reads a string stored under k in m.
func String(m map[string]any, k string) string {
	v, _ := m[k].(string)
	return v
}

// StringOr reads a string stored under k in m, returning def if it is absent
// or empty.
func StringOr(m map[string]any, k, def string) string {
	if v := String(m, k); v != "" {
		return v
	}
	return def
}
