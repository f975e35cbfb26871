package fixalloc

import (
	"fmt"
	"unsafe"
)

// ExampleArena_Allocate demonstrates the basic allocate/free cycle. Actual
// addresses depend on where the Go runtime places the backing buffer, so
// the example prints offsets from the arena base instead — those are
// fixed by the geometry (PageSize=2048, Min=16) regardless of where the
// arena happens to live.
func ExampleArena_Allocate() {
	const length, pageSize, min = 256 * 1024, 2048, 16

	buf := make([]byte, length)
	base := uintptr(unsafe.Pointer(&buf[0]))

	a, err := New(Config{Base: base, Len: length, PageSize: pageSize, Min: min})
	if err != nil {
		fmt.Println("construction error:", err)
		return
	}

	p, err := a.Allocate(16, 8)
	if err != nil {
		fmt.Println("allocate error:", err)
		return
	}
	fmt.Println("offset:", p-a.base)

	a.Free(p, 16, 8)
	p2, err := a.Allocate(16, 8)
	if err != nil {
		fmt.Println("allocate error:", err)
		return
	}
	fmt.Println("reused:", p2 == p)

	_ = buf[len(buf)-1] // keep the backing array alive through the unsafe reads above

	// Output:
	// offset: 208
	// reused: true
}
