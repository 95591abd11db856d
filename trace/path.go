package trace

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/concolic-labs/pathfinder/program"
	"golang.org/x/crypto/sha3"
	"golang.org/x/exp/slices"
)

// Path is the ordered sequence of blocks visited by one execution. Two paths are the same path when their block
// sequences are equal.
type Path []program.BlockID

// Equal returns whether both paths visit the same blocks in the same order.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// Hash returns a hex encoded Keccak256 fingerprint of the block sequence. Equal paths have equal hashes.
func (p Path) Hash() string {
	hash := sha3.NewLegacyKeccak256()
	for _, id := range p {
		// Identifiers are length-prefixed so that distinct sequences never share an encoding
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(id)))
		hash.Write(length[:])
		hash.Write([]byte(id))
	}
	return hex.EncodeToString(hash.Sum(nil))
}

// Contains returns whether the path visits the given block.
func (p Path) Contains(id program.BlockID) bool {
	return slices.Contains(p, id)
}

// String returns the path as "a -> b -> c".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, " -> ")
}
