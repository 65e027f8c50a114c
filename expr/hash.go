package expr

import (
	"encoding/binary"
	"hash/fnv"
)

// Hash returns a structural hash of e, consistent with Equal: two equal
// expressions hash identically. Constraints do not participate, matching
// Equal's behavior of comparing structure only. Expressions hold slices and
// so cannot be Go map keys themselves; callers bucket by this hash and
// confirm with Equal, the usual pattern for hash-consing immutable trees.
func Hash(e Expression) uint64 {
	h := fnv.New64a()
	writeHash(h, e)
	return h.Sum64()
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func writeHash(h hashWriter, e Expression) {
	var kind [1]byte
	kind[0] = byte(e.Kind())
	h.Write(kind[:])
	switch x := e.(type) {
	case Symbol:
		h.Write([]byte(x.Name))
		h.Write([]byte{0})
		h.Write([]byte(x.Class))
	case Variable:
		h.Write([]byte(x.Name))
		h.Write([]byte{0})
		writeHash(h, x.Inner)
	case Wildcard:
		var buf [5]byte
		binary.LittleEndian.PutUint32(buf[:4], uint32(x.MinCount))
		if x.FixedSize {
			buf[4] = 1
		}
		h.Write(buf[:])
	case SymbolWildcard:
		h.Write([]byte(x.Class))
	case Operation:
		h.Write([]byte(x.head.name))
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(len(x.Operands)))
		h.Write(buf[:])
		for _, op := range x.Operands {
			writeHash(h, op)
		}
	}
}
