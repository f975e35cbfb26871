package fixalloc

import (
	"testing"
	"unsafe"

	"github.com/arenaheap/fixalloc/internal/memutil"
)

func newPageBitmap(t *testing.T, p uint32) headerLayout {
	t.Helper()
	buf := make([]byte, 16+uintptr(p))
	base := uintptr(unsafe.Pointer(&buf[0]))
	lay := headerLayout{base: base, k: 0, p: p}
	for i := uint32(0); i < p; i++ {
		memutil.WriteByte(lay.pageUsedAddr(i), 0)
	}
	t.Cleanup(func() { keepAlive(buf) })
	return lay
}

func TestFindFreePageScansLowToHigh(t *testing.T) {
	lay := newPageBitmap(t, 8)
	memutil.WriteByte(lay.pageUsedAddr(0), 1)
	memutil.WriteByte(lay.pageUsedAddr(1), 1)

	idx, ok := findFreePage(lay)
	if !ok || idx != 2 {
		t.Fatalf("findFreePage = (%d, %v), want (2, true)", idx, ok)
	}
	if memutil.ReadByte(lay.pageUsedAddr(2)) != 1 {
		t.Fatalf("findFreePage did not mark page 2 used")
	}
}

func TestFindFreePageExhausted(t *testing.T) {
	lay := newPageBitmap(t, 4)
	for i := uint32(0); i < 4; i++ {
		memutil.WriteByte(lay.pageUsedAddr(i), 1)
	}
	if _, ok := findFreePage(lay); ok {
		t.Fatalf("findFreePage succeeded on a fully used bitmap")
	}
}

func TestFindRunPrefersHighIndices(t *testing.T) {
	lay := newPageBitmap(t, 8)
	start, ok := findRun(lay, 3)
	if !ok || start != 5 {
		t.Fatalf("findRun(3) = (%d, %v), want (5, true)", start, ok)
	}
	for i := uint32(5); i < 8; i++ {
		if memutil.ReadByte(lay.pageUsedAddr(i)) != 1 {
			t.Errorf("page %d not marked used after findRun", i)
		}
	}
}

// A run of exactly P pages must be reachable at begin=0 — the original
// version of this scan excluded that candidate (range [0, P-n)), an
// off-by-one fixed here (see SPEC_FULL.md REDESIGN FLAGS).
func TestFindRunCoversFullArena(t *testing.T) {
	lay := newPageBitmap(t, 4)
	start, ok := findRun(lay, 4)
	if !ok || start != 0 {
		t.Fatalf("findRun(P) = (%d, %v), want (0, true)", start, ok)
	}
}

func TestFindRunSkipsUsedPages(t *testing.T) {
	lay := newPageBitmap(t, 6)
	memutil.WriteByte(lay.pageUsedAddr(4), 1) // blocks the top-most run of 2

	start, ok := findRun(lay, 2)
	if !ok || start != 2 {
		t.Fatalf("findRun(2) = (%d, %v), want (2, true)", start, ok)
	}
}

func TestFindRunTooLarge(t *testing.T) {
	lay := newPageBitmap(t, 4)
	if _, ok := findRun(lay, 5); ok {
		t.Fatalf("findRun(5) succeeded against a 4-page arena")
	}
}

func TestReleaseRunFreesExactRange(t *testing.T) {
	lay := newPageBitmap(t, 8)
	start, ok := findRun(lay, 3)
	if !ok {
		t.Fatalf("findRun(3) failed")
	}
	releaseRun(lay, start, 3)
	for i := start; i < start+3; i++ {
		if memutil.ReadByte(lay.pageUsedAddr(i)) != 0 {
			t.Errorf("page %d still marked used after releaseRun", i)
		}
	}

	start2, ok := findRun(lay, 3)
	if !ok || start2 != start {
		t.Fatalf("findRun after releaseRun = (%d, %v), want (%d, true)", start2, ok, start)
	}
}
