package fixalloc

import "github.com/arenaheap/fixalloc/internal/memutil"

// promoteToSlab carves a free page into PAGE_SIZE/blockSize equal blocks
// and links them into a fresh intrusive free list, page base to page end.
// It does not touch free_head; the caller links the page in.
func promoteToSlab(pageBase uintptr, pageSize, blockSize uint32) {
	count := pageSize / blockSize
	for i := uint32(0); i+1 < count; i++ {
		addr := pageBase + uintptr(i)*uintptr(blockSize)
		memutil.WriteWord(addr, pageBase+uintptr(i+1)*uintptr(blockSize))
	}
	last := pageBase + uintptr(count-1)*uintptr(blockSize)
	memutil.WriteWord(last, 0)
}

// popFree pops the head of the free list at headAddr, or reports false if
// the list is empty.
func popFree(headAddr uintptr) (uintptr, bool) {
	head := memutil.ReadWord(headAddr)
	if head == 0 {
		return 0, false
	}
	memutil.WriteWord(headAddr, memutil.ReadWord(head))
	return head, true
}

// pushFree pushes ptr onto the front of the free list at headAddr. There
// is no check that ptr belongs to the slab this list serves — that is the
// caller's responsibility, carried from the size argument passed to Free.
func pushFree(headAddr uintptr, ptr uintptr) {
	memutil.WriteWord(ptr, memutil.ReadWord(headAddr))
	memutil.WriteWord(headAddr, ptr)
}
