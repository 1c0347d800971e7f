package assemble

import (
	"testing"

	"voxplace.dev/internal/mathx"
)

func TestDecodeRotationValidEncodings(t *testing.T) {
	seen := map[mathx.Mat3]bool{}
	for enc := 0; enc < 128; enc++ {
		m, err := DecodeRotation(uint8(enc))
		if err != nil {
			continue
		}
		if d := m.Det(); d != 1 && d != -1 {
			t.Fatalf("enc %#x: determinant %d", enc, d)
		}
		for i := 0; i < 3; i++ {
			rowNonzero, colNonzero := 0, 0
			for j := 0; j < 3; j++ {
				if v := m.M[i][j]; v != 0 {
					rowNonzero++
					if v != 1 && v != -1 {
						t.Fatalf("enc %#x: entry %d", enc, v)
					}
				}
				if m.M[j][i] != 0 {
					colNonzero++
				}
			}
			if rowNonzero != 1 || colNonzero != 1 {
				t.Fatalf("enc %#x: row/col %d has %d/%d nonzero entries", enc, i, rowNonzero, colNonzero)
			}
		}
		seen[m] = true
	}
	// 6 axis permutations times 8 sign patterns.
	if len(seen) != 48 {
		t.Fatalf("expected 48 distinct signed permutations, got %d", len(seen))
	}
}

func TestDecodeRotationRejectsReservedSelector(t *testing.T) {
	for _, enc := range []uint8{0x03, 0x0c, 0x0f, 0x73} {
		m, err := DecodeRotation(enc)
		if err == nil {
			t.Fatalf("enc %#x should be invalid", enc)
		}
		if m != mathx.Identity() {
			t.Fatalf("invalid encoding must fall back to identity, got %v", m)
		}
	}
}

func TestDecodeRotationRejectsCoincidingSelectors(t *testing.T) {
	// Row 0 and row 1 reading the same input axis would be singular.
	for _, enc := range []uint8{0x00, 0x05, 0x0a, 0x50} {
		if _, err := DecodeRotation(enc); err == nil {
			t.Fatalf("enc %#x selects the same axis twice and must be rejected", enc)
		}
	}
}

func TestDecodeRotationKnownMatrix(t *testing.T) {
	// Selector x<-y negated, y<-x: a quarter turn about z.
	m, err := DecodeRotation(0x11)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := mathx.Mat3{M: [3][3]int{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}}
	if m != want {
		t.Fatalf("got %v, want %v", m, want)
	}
}

func TestDecodeRotationIdentityEncoding(t *testing.T) {
	// Row 0 reads x, row 1 reads y, no signs: 0b0000100.
	m, err := DecodeRotation(0x04)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m != mathx.Identity() {
		t.Fatalf("got %v", m)
	}
}
