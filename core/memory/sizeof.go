package memory

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/crypto"
)

// typeSizeCacheCap mirrors the capacity chosen for OpCodeCache's sibling
// caches in the teacher (bitvecCache, optimizedCodeCache): a generous bound
// that is never expected to evict in practice for a single interpreter run.
const typeSizeCacheCap = 1024 * 1024

// typeSizeCache memoizes Sizeof by the Keccak256 hash of a DType's canonical
// encoding, the same common.Hash-keyed lru.Cache shape OpCodeCache uses to
// memoize per-codeHash artifacts.
var typeSizeCache = lru.NewCache[common.Hash, int64](typeSizeCacheCap)

// Sizeof computes sizeof(t) per spec §4.1: every integer width pads to 8
// bytes, pointers are 8 bytes, floats/doubles are 4/8 bytes, arrays and
// (packed or not) structs sum their elements with no alignment padding, and
// any other/unknown shape sizes 0.
func Sizeof(t DType) int64 {
	key := hashType(t)
	if v, ok := typeSizeCache.Get(key); ok {
		return v
	}
	v := sizeofUncached(t)
	typeSizeCache.Add(key, v)
	return v
}

func sizeofUncached(t DType) int64 {
	switch t.Kind {
	case TInt:
		return 8
	case TPtr:
		return 8
	case TFloat:
		return 4
	case TDouble:
		return 8
	case TArray, TVector:
		if t.Elem == nil {
			return 0
		}
		return int64(t.Count) * Sizeof(*t.Elem)
	case TStruct, TPacked:
		var total int64
		for _, f := range t.Fields {
			total += Sizeof(f)
		}
		return total
	default:
		return 0
	}
}

// hashType derives a stable cache key from a DType's structural encoding.
func hashType(t DType) common.Hash {
	return crypto.Keccak256Hash(encodeType(nil, t))
}

func encodeType(buf []byte, t DType) []byte {
	buf = append(buf, byte(t.Kind))
	switch t.Kind {
	case TInt:
		var w [8]byte
		binary.LittleEndian.PutUint64(w[:], uint64(t.Width))
		buf = append(buf, w[:]...)
	case TArray, TVector:
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(t.Count))
		buf = append(buf, n[:]...)
		if t.Elem != nil {
			buf = encodeType(buf, *t.Elem)
		}
	case TStruct, TPacked:
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(t.Fields)))
		buf = append(buf, n[:]...)
		for _, f := range t.Fields {
			buf = encodeType(buf, f)
		}
	}
	return buf
}
