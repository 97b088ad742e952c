package wire

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// SlotForKey derives a stable slot (0..numSlots-1) from an arbitrary key.
func SlotForKey(key string, numSlots uint32, seed string) uint32 {
	if numSlots == 0 {
		return 0
	}
	h, _ := blake2b.New(8, nil)
	if seed != "" {
		h.Write([]byte(seed))
		h.Write([]byte{0})
	}
	h.Write([]byte(key))
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum)
	return uint32(v % uint64(numSlots))
}
