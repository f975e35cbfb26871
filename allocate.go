package fixalloc

import "github.com/arenaheap/fixalloc/internal/memutil"

// Allocate returns a pointer to a block of at least size bytes aligned to
// at least align, or an error on exhaustion. align of 0 is treated as 1;
// a non-power-of-two align is rounded up.
//
// Apart from the first call, which runs the lazy header init and emits its
// one-shot event through Config.Logger, Allocate never logs, allocates Go
// memory, or calls anything beyond this module's own packages: it is the
// allocator of last resort, and cannot itself depend on one.
func (a *Arena) Allocate(size, align uint32) (uintptr, error) {
	lay := a.layout()
	if err := a.ensureInit(lay); err != nil {
		return 0, err
	}

	if align == 0 {
		align = 1
	} else if !isPow2(align) {
		align = RoundUpPow2(align)
	}

	class, small := classForAlignedSize(size, align, a.minLog2, a.k)
	if small {
		return a.allocateSmall(lay, class)
	}
	return a.allocateLarge(lay, size, align)
}

func (a *Arena) allocateSmall(lay headerLayout, class uint) (uintptr, error) {
	headAddr := lay.freeHeadAddr(class)
	if ptr, ok := popFree(headAddr); ok {
		return ptr, nil
	}

	idx, ok := findFreePage(lay)
	if !ok {
		return 0, ErrExhausted
	}

	pageBase := a.base + uintptr(idx)*uintptr(a.pageSize)
	blockSize := blockSizeForClass(a.minLog2, class)
	promoteToSlab(pageBase, a.pageSize, blockSize)
	memutil.WriteWord(headAddr, pageBase)

	ptr, _ := popFree(headAddr)
	return ptr, nil
}

func (a *Arena) allocateLarge(lay headerLayout, size, align uint32) (uintptr, error) {
	if align > a.pageSize {
		return 0, ErrUnsupportedAlignment
	}

	n := ceilDivU32(size, a.pageSize)
	if n > a.p {
		return 0, ErrRequestTooLarge
	}

	start, ok := findRun(lay, n)
	if !ok {
		return 0, ErrExhausted
	}
	return a.base + uintptr(start)*uintptr(a.pageSize), nil
}

// Free returns a block to the allocator. A nil (zero) pointer is a no-op.
// size and align must be exactly what was passed to the Allocate call
// that produced ptr — align matters here, not just size, because an
// alignment bump at allocation time can push a block into a class size
// alone would not have picked (see classForAlignedSize); spec.md §4.6
// states free's class purely from size, but its own external API in §6
// carries align on free for this reason, and this module follows §6. A
// wrong size or align is undefined behavior (spec.md §7.4) and this path
// does not validate it. Freeing a small block never releases its slab
// page back to the page pool — slab pages are owned by their size class
// for the arena's lifetime.
func (a *Arena) Free(ptr uintptr, size, align uint32) {
	if ptr == 0 {
		return
	}
	if align == 0 {
		align = 1
	} else if !isPow2(align) {
		align = RoundUpPow2(align)
	}

	lay := a.layout()
	class, small := classForAlignedSize(size, align, a.minLog2, a.k)
	if small {
		pushFree(lay.freeHeadAddr(class), ptr)
		return
	}

	start := uint32((ptr - a.base) / uintptr(a.pageSize))
	n := ceilDivU32(size, a.pageSize)
	releaseRun(lay, start, n)
}

// Reallocate resizes the block at ptr from oldSize to newSize, preserving
// the overlap in [0, min(oldSize, newSize)). align applies to both the old
// and the new block, matching spec.md §4.6's single-align signature
// (realloc conventionally preserves the original alignment). If oldSize
// and newSize fall in the same small size class once align is accounted
// for, the block is already large enough and the same pointer is returned
// unchanged. Otherwise a new block is allocated, the overlap is copied,
// and the old block is freed.
func (a *Arena) Reallocate(ptr uintptr, oldSize, newSize, align uint32) (uintptr, error) {
	oldClass, oldSmall := classForAlignedSize(oldSize, align, a.minLog2, a.k)
	newClass, newSmall := classForAlignedSize(newSize, align, a.minLog2, a.k)
	if oldSmall && newSmall && oldClass == newClass {
		return ptr, nil
	}

	newPtr, err := a.Allocate(newSize, align)
	if err != nil {
		return 0, err
	}
	memutil.Memcopy(newPtr, ptr, minU32(oldSize, newSize))
	a.Free(ptr, oldSize, align)
	return newPtr, nil
}

func ceilDivU32(a, b uint32) uint32 {
	return (a + b - 1) / b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
