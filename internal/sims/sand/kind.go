package sand

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the behaviour variant of a particle. A particle's kind is
// fixed at construction; changing what occupies a cell means replacing the
// particle.
type Kind uint8

const (
	KindEmpty Kind = iota
	// KindBarrier is externally imposed geometry. It is the only kind bulk
	// cleared when the host's shapes change.
	KindBarrier
	// KindStone is natural rock: immobile but dissolvable by acid.
	KindStone
	KindSand
	KindWater
	KindSteam
	KindAcid
	KindPlant

	kindCount
)

// ErrUnknownKind is returned when a particle of an unsupported kind is requested.
var ErrUnknownKind = errors.New("unknown particle kind")

var kindNames = [kindCount]string{
	KindEmpty:   "empty",
	KindBarrier: "barrier",
	KindStone:   "stone",
	KindSand:    "sand",
	KindWater:   "water",
	KindSteam:   "steam",
	KindAcid:    "acid",
	KindPlant:   "plant",
}

var kindAliases = map[string]Kind{
	"air":  KindEmpty,
	"geo":  KindBarrier,
	"rock": KindStone,
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == key {
			return Kind(k), nil
		}
	}
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Solid reports whether k never moves.
func (k Kind) Solid() bool { return k == KindBarrier || k == KindStone }

// Dissolvable reports whether acid can eat through k.
func (k Kind) Dissolvable() bool { return k == KindSand || k == KindStone }

// unknownKind wraps ErrUnknownKind with the offending value.
func unknownKind(k Kind) error {
	return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
}
