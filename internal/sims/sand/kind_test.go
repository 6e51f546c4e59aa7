package sand

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"sand":    KindSand,
		" Water ": KindWater,
		"air":     KindEmpty,
		"geo":     KindBarrier,
		"rock":    KindStone,
		"plant":   KindPlant,
	}
	for name, want := range cases {
		got, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q)=%v, want %v", name, got, want)
		}
	}
	if _, err := ParseKind("lava"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind for lava, got %v", err)
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("kind %v did not round-trip: %v %v", k, got, err)
		}
	}
	if Kind(42).Valid() {
		t.Fatal("Kind(42) should be invalid")
	}
	if Kind(42).String() != "Kind(42)" {
		t.Fatalf("unexpected invalid kind name %q", Kind(42).String())
	}
}

func TestDissolvable(t *testing.T) {
	for _, k := range Kinds() {
		want := k == KindSand || k == KindStone
		if k.Dissolvable() != want {
			t.Fatalf("%v dissolvable=%v, want %v", k, k.Dissolvable(), want)
		}
	}
}
