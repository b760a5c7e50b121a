package idgen

import (
	"strings"
	"testing"
)

func TestNanoID_Length(t *testing.T) {
	for _, length := range []int{8, 12, 16, 24} {
		gen := NanoID(length)
		id := gen()
		if len(id) != length {
			t.Fatalf("NanoID(%d): got length %d", length, len(id))
		}
	}
}

func TestNanoID_Alphabet(t *testing.T) {
	gen := NanoID(100)
	id := gen()
	for _, c := range id {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')) {
			t.Fatalf("NanoID: unexpected character %q in %q", c, id)
		}
	}
}

func TestUUIDv7_Sortable(t *testing.T) {
	gen := UUIDv7()
	a, b := gen(), gen()
	if a == b {
		t.Fatal("UUIDv7: duplicate IDs")
	}
	if strings.Compare(a, b) >= 0 {
		t.Fatalf("UUIDv7: not time-sortable: %q then %q", a, b)
	}
}

func TestTimestamped(t *testing.T) {
	gen := Timestamped(NanoID(6))
	id := gen()
	if !strings.Contains(id, "_") {
		t.Fatalf("Timestamped: missing separator in %q", id)
	}
	if len(id) != len("20060102T150405Z")+1+6 {
		t.Fatalf("Timestamped: unexpected length for %q", id)
	}
}
