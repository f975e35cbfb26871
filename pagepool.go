package fixalloc

import "github.com/arenaheap/fixalloc/internal/memutil"

// findFreePage scans from page 0 and flips the first free page to used.
func findFreePage(lay headerLayout) (uint32, bool) {
	for i := uint32(0); i < lay.p; i++ {
		if memutil.ReadByte(lay.pageUsedAddr(i)) == 0 {
			memutil.WriteByte(lay.pageUsedAddr(i), 1)
			return i, true
		}
	}
	return 0, false
}

// findRun locates a contiguous run of n free pages, scanning candidate
// start indices from P-n down to 0 (inclusive) so that low page indices —
// including PAGE[0], which holds the header — stay available for slab
// growth. On success all n pages are flipped to used.
func findRun(lay headerLayout, n uint32) (uint32, bool) {
	if n == 0 || n > lay.p {
		return 0, false
	}
	for begin := int64(lay.p) - int64(n); begin >= 0; begin-- {
		start := uint32(begin)
		free := true
		for i := start; i < start+n; i++ {
			if memutil.ReadByte(lay.pageUsedAddr(i)) != 0 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for i := start; i < start+n; i++ {
			memutil.WriteByte(lay.pageUsedAddr(i), 1)
		}
		return start, true
	}
	return 0, false
}

// releaseRun flips n pages starting at start back to free. No coalescing
// state is kept; this is a bitmap, nothing more.
func releaseRun(lay headerLayout, start, n uint32) {
	for i := start; i < start+n; i++ {
		memutil.WriteByte(lay.pageUsedAddr(i), 0)
	}
}
