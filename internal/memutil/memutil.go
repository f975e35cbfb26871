// Package memutil provides the raw word/byte read-write primitives the
// allocator builds on. Every function here is a thin, inlinable wrapper
// around unsafe.Pointer arithmetic: the allocator operates directly on the
// arena's bytes, so these are the only place in the module a byte address
// is turned into a Go pointer.
package memutil

import "unsafe"

// WordSize is the size in bytes of a pointer-sized integer on this
// platform. Header offsets are expressed in words of this size.
const WordSize = unsafe.Sizeof(uintptr(0))

// ReadWord reads a pointer-sized word at addr.
//
//go:nosplit
func ReadWord(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr))
}

// WriteWord writes a pointer-sized word at addr.
//
//go:nosplit
func WriteWord(addr uintptr, v uintptr) {
	*(*uintptr)(unsafe.Pointer(addr)) = v
}

// ReadByte reads a single byte at addr.
//
//go:nosplit
func ReadByte(addr uintptr) byte {
	return *(*byte)(unsafe.Pointer(addr))
}

// WriteByte writes a single byte at addr.
//
//go:nosplit
func WriteByte(addr uintptr, v byte) {
	*(*byte)(unsafe.Pointer(addr)) = v
}

// Bzero zeros size bytes starting at ptr, word at a time where possible.
//
//go:nosplit
func Bzero(ptr unsafe.Pointer, size uint32) {
	base := uintptr(ptr)
	var i uint32
	for ; uintptr(i)+WordSize <= uintptr(size); i += uint32(WordSize) {
		WriteWord(base+uintptr(i), 0)
	}
	for ; i < size; i++ {
		WriteByte(base+uintptr(i), 0)
	}
}

// Memcopy copies size bytes from src to dst. The regions must not overlap.
//
//go:nosplit
func Memcopy(dst, src uintptr, size uint32) {
	var i uint32
	for ; uintptr(i)+WordSize <= uintptr(size); i += uint32(WordSize) {
		WriteWord(dst+uintptr(i), ReadWord(src+uintptr(i)))
	}
	for ; i < size; i++ {
		WriteByte(dst+uintptr(i), ReadByte(src+uintptr(i)))
	}
}

// CastToPointer converts addr to a typed pointer, hiding the
// unsafe.Pointer conversion at call sites.
func CastToPointer[T any](addr uintptr) *T {
	return (*T)(unsafe.Pointer(addr))
}
