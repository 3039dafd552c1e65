package pmap

import (
	"cmp"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/minio/blake2b-simd"
)

// DefaultOrder compares keys by their natural Go ordering.
func DefaultOrder[K cmp.Ordered](a, b K) int {
	return cmp.Compare(a, b)
}

// DefaultPriority derives a node priority by hashing the key.  Equal keys
// always get equal priorities, which is what makes a map's shape canonical:
// it depends only on which keys are present, not on insertion order.
func DefaultPriority[K any](key K) uint64 {
	return hashPriority(keyBytes(key))
}

// keyBytes renders a key to a stable byte string for hashing.  Common key
// types are rendered directly; everything else falls back to JSON, and
// unmarshalable keys to their fmt representation.
func keyBytes(key interface{}) []byte {
	switch v := key.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	case int:
		return strconv.AppendInt(nil, int64(v), 10)
	case int8:
		return strconv.AppendInt(nil, int64(v), 10)
	case int16:
		return strconv.AppendInt(nil, int64(v), 10)
	case int32:
		return strconv.AppendInt(nil, int64(v), 10)
	case int64:
		return strconv.AppendInt(nil, v, 10)
	case uint:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint8:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint16:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint32:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint64:
		return strconv.AppendUint(nil, v, 10)
	case float32:
		return strconv.AppendFloat(nil, float64(v), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(nil, v, 'g', -1, 64)
	}
	b, err := json.Marshal(key)
	if err != nil {
		return []byte(fmt.Sprintf("%v", key))
	}
	return b
}

func hashPriority(b []byte) uint64 {
	h := blake2b.Sum256(b)
	return binary.BigEndian.Uint64(h[:8])
}
