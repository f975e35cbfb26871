package fixalloc

import "github.com/arenaheap/fixalloc/internal/memutil"

// headerLayout computes addresses within the arena header. It carries no
// state of its own beyond the geometry needed to address a field: the base
// address, the number of size classes (k), and the page count (p).
//
// Layout, word = memutil.WordSize:
//
//	word 0         init_marker
//	words 1..k     free_head[0..k)
//	bytes after    page_used[0..p), one byte per page (see REDESIGN in
//	               SPEC_FULL.md: the base spec budgets one word per page
//	               "for addressing convenience"; a byte is enough and costs
//	               less of the arena it is describing).
type headerLayout struct {
	base uintptr
	k    uint
	p    uint32
}

func (h headerLayout) initMarkerAddr() uintptr {
	return h.base
}

func (h headerLayout) freeHeadAddr(class uint) uintptr {
	return h.base + (1+uintptr(class))*memutil.WordSize
}

func (h headerLayout) pageUsedBase() uintptr {
	return h.base + (1+uintptr(h.k))*memutil.WordSize
}

func (h headerLayout) pageUsedAddr(i uint32) uintptr {
	return h.pageUsedBase() + uintptr(i)
}

// end returns the address just past the last page_used byte.
func (h headerLayout) end() uintptr {
	return h.pageUsedBase() + uintptr(h.p)
}

// headerSize returns the number of bytes the header occupies for a given
// (k, p), independent of any particular base address.
func headerSize(k uint, p uint32) uintptr {
	return (1+uintptr(k))*memutil.WordSize + uintptr(p)
}

func isInitialized(lay headerLayout) bool {
	return memutil.ReadWord(lay.initMarkerAddr()) != 0
}

// initHeader performs the lazy one-shot init described in the data model:
// write the marker, zero the free-list heads and page_used bitmap, mark
// PAGE[0] used, then seed free_head[0] with the post-header surplus block.
// It returns the address of the seeded surplus block.
func initHeader(lay headerLayout, base uintptr, pageSize, min uint32) (uintptr, error) {
	memutil.WriteWord(lay.initMarkerAddr(), base)

	for class := uint(0); class < lay.k; class++ {
		memutil.WriteWord(lay.freeHeadAddr(class), 0)
	}
	for i := uint32(0); i < lay.p; i++ {
		memutil.WriteByte(lay.pageUsedAddr(i), 0)
	}
	memutil.WriteByte(lay.pageUsedAddr(0), 1)

	headerEnd := lay.end()
	surplus := roundUpToMultiple(headerEnd, uintptr(min))
	pageEnd := base + uintptr(pageSize)
	if surplus+uintptr(min) > pageEnd {
		return 0, ErrHeaderOverflowsFirstPage
	}

	memutil.WriteWord(surplus, 0)
	memutil.WriteWord(lay.freeHeadAddr(0), surplus)

	return surplus, nil
}

func roundUpToMultiple(x, m uintptr) uintptr {
	r := x % m
	if r == 0 {
		return x
	}
	return x + (m - r)
}
