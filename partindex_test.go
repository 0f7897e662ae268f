package rfc3986

import "testing"

func TestPartIndexOffsetEmpty(t *testing.T) {
	pi := newPartIndex(4)
	for i := 0; i <= 4; i++ {
		if got := pi.Offset(i); got != 0 {
			t.Fatalf("Offset(%d) = %d, expected 0 on empty index", i, got)
		}
	}
}

func TestPartIndexResizeGrowsSuffix(t *testing.T) {
	pi := newPartIndex(4)
	pi.Resize(0, 3)
	pi.Resize(1, 2)
	pi.Resize(2, 0)
	pi.Resize(3, 5)

	testPartIndexOffsets(t, &pi, []int{0, 3, 5, 5, 10})
}

func TestPartIndexResizeShrinks(t *testing.T) {
	pi := newPartIndex(3)
	pi.Resize(0, 4)
	pi.Resize(1, 4)
	pi.Resize(2, 4)
	testPartIndexOffsets(t, &pi, []int{0, 4, 8, 12})

	pi.Resize(1, 1)
	testPartIndexOffsets(t, &pi, []int{0, 4, 5, 9})
}

func TestPartIndexSplitPairing(t *testing.T) {
	// two adjacent parts jointly move their shared boundary without
	// changing the combined length.
	pi := newPartIndex(2)
	pi.Resize(0, 10)

	pi.Split(0, 3)
	pi.Split(1, 7)

	testPartIndexOffsets(t, &pi, []int{3, 10})
}

func TestPartIndexReset(t *testing.T) {
	pi := newPartIndex(3)
	pi.Resize(0, 5)
	pi.Resize(1, 5)
	pi.Reset()
	testPartIndexOffsets(t, &pi, []int{0, 0, 0})
}

func TestPartIndexLength(t *testing.T) {
	pi := newPartIndex(4)
	pi.Resize(0, 3)
	pi.Resize(1, 2)
	pi.Resize(2, 0)
	pi.Resize(3, 5)

	if got := pi.Length(0, 4); got != 10 {
		t.Fatalf("Length(0,4) = %d, expected 10", got)
	}
	if got := pi.Length(1, 3); got != 2 {
		t.Fatalf("Length(1,3) = %d, expected 2", got)
	}
	if got := pi.Length(2, 2); got != 0 {
		t.Fatalf("Length(2,2) = %d, expected 0", got)
	}
}

func testPartIndexOffsets(t *testing.T, pi *partIndex, expected []int) {
	for i, want := range expected {
		if got := pi.Offset(i + 1); got != want {
			t.Fatalf("Offset(%d) = %d, expected %d", i+1, got, want)
		}
	}
}
