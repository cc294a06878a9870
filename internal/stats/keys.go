package stats

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// CompareKeys orders two key values of the same kind
// Returns -1, 0, or 1, or an error when the values are not comparable
func CompareKeys(a, b interface{}) (int, error) {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}
		return strings.Compare(as, bs), nil
	}

	af, ok := KeyToFloat(a)
	if !ok {
		return 0, fmt.Errorf("unsupported key type %T", a)
	}
	bf, ok := KeyToFloat(b)
	if !ok {
		return 0, fmt.Errorf("cannot compare %T with %T", a, b)
	}

	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

// KeyToFloat maps a key value onto the histogram's numeric domain
// Numbers map to their value; strings map to a big-endian encoding of
// their first 8 bytes, which preserves lexicographic order well enough
// for range and prefix estimation
func KeyToFloat(v interface{}) (float64, bool) {
	switch k := v.(type) {
	case int:
		return float64(k), true
	case int64:
		return float64(k), true
	case float64:
		return k, true
	case string:
		return encodeStringPrefix(k, 0x00), true
	default:
		return 0, false
	}
}

// PrefixRange returns the numeric interval covered by all strings
// starting with the given prefix
func PrefixRange(prefix string) (float64, float64) {
	return encodeStringPrefix(prefix, 0x00), encodeStringPrefix(prefix, 0xFF)
}

// encodeStringPrefix packs the first 8 bytes of s into a uint64,
// padding short strings with the given byte
func encodeStringPrefix(s string, pad byte) float64 {
	var buf [8]byte
	for i := range buf {
		if i < len(s) {
			buf[i] = s[i]
		} else {
			buf[i] = pad
		}
	}
	return float64(binary.BigEndian.Uint64(buf[:]))
}
