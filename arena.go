// Package fixalloc implements a fixed-region, segregated free-list heap
// allocator for a sandboxed, resource-bounded host: the arena is a
// pre-reserved contiguous byte region of known base address and length,
// supplied by the host at load time, and this package never calls into an
// external allocation primitive to grow or manage it. It is meant to sit
// behind a host's process-wide allocator hook, not to be the ergonomic
// allocator application code reaches for directly.
package fixalloc

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arenaheap/fixalloc/internal/memutil"
)

func wordSizeBytes() uintptr {
	return memutil.WordSize
}

// Config describes the fixed arena an Arena manages. Every field is
// validated by Validate before an Arena is constructed; violations abort
// construction rather than being discovered mid-allocation.
type Config struct {
	// Base is the arena's base address. Must be > 0.
	Base uintptr
	// Len is the arena length in bytes. Must be a multiple of PageSize.
	Len uint32
	// PageSize is the page size in bytes. Must be a power of two and
	// less than Len.
	PageSize uint32
	// Min is the minimum block size in bytes: a power of two, at least
	// the width of a pointer-sized integer, and a divisor of PageSize.
	Min uint32
	// Logger receives one-shot construction and lazy-init events. A nil
	// Logger is treated as zap.NewNop() — it is never consulted from the
	// steady-state Allocate/Free/Reallocate path.
	Logger *zap.Logger
}

// derive computes the derived geometry (log2(Min), number of size
// classes, page count) from an already-validated Config.
func derive(c Config) (minLog2 uint, k uint, p uint32) {
	minLog2 = CeilLog2(c.Min)
	pageLog2 := CeilLog2(c.PageSize)
	k = pageLog2 - minLog2 + 1
	p = c.Len / c.PageSize
	return
}

// Arena is a constructed, validated fixed-region allocator. It holds no
// metadata of its own beyond the geometry needed to address the header —
// the header itself lives inside the arena bytes at Base, and is
// lazily initialized on first use (see spec.md §3, "Lifecycle").
type Arena struct {
	base     uintptr
	length   uint32
	pageSize uint32
	min      uint32
	minLog2  uint
	k        uint
	p        uint32

	log *zap.Logger
	id  uuid.UUID
}

// New is the runtime construction mode: Base and the other Config fields
// are ordinary values, not baked into the binary. It is the mode intended
// for tests that run under a conventional heap (see newTestArena in
// arena_test.go) and for hosts that learn the arena's base address at
// load time.
func New(cfg Config) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	minLog2, k, p := derive(cfg)
	a := &Arena{
		base:     cfg.Base,
		length:   cfg.Len,
		pageSize: cfg.PageSize,
		min:      cfg.Min,
		minLog2:  minLog2,
		k:        k,
		p:        p,
		log:      nopIfNil(cfg.Logger),
		id:       uuid.New(),
	}

	a.log.Debug("arena constructed",
		zap.String("arena_id", a.id.String()),
		zap.Uint64("base", uint64(a.base)),
		zap.Uint32("len", a.length),
		zap.Uint32("page_size", a.pageSize),
		zap.Uint32("min", a.min),
		zap.Uint("size_classes", a.k),
		zap.Uint32("pages", a.p),
	)
	return a, nil
}

// NewFromConstants is the compile-time construction mode: callers pass
// literal Go constants for length, pageSize and min, the same values a
// const-generic instantiation would bake into the binary in a language
// that has them. It is a thin wrapper kept separate from New so a call
// site documents which construction mode it intends; the choice of which
// mode a given build uses is the host's build-time convenience, not this
// package's concern (see spec.md §1, "build-time feature toggle").
func NewFromConstants(base uintptr, length, pageSize, min uint32) (*Arena, error) {
	return New(Config{Base: base, Len: length, PageSize: pageSize, Min: min})
}

func (a *Arena) layout() headerLayout {
	return headerLayout{base: a.base, k: a.k, p: a.p}
}

// ensureInit runs the lazy one-shot header init the first time it is
// observed that init_marker is still zero. On every later call this is a
// single word read.
func (a *Arena) ensureInit(lay headerLayout) error {
	if isInitialized(lay) {
		return nil
	}
	surplus, err := initHeader(lay, a.base, a.pageSize, a.min)
	if err != nil {
		return err
	}
	a.log.Debug("arena lazily initialized",
		zap.String("arena_id", a.id.String()),
		zap.Uint64("surplus_addr", uint64(surplus)),
		zap.Uint64("header_end", uint64(lay.end())),
	)
	return nil
}

// Stats reports page-level occupancy. It is read-only, takes no part in
// the allocate/free hot path, and exists to preserve the introspection the
// original single-file implementation got for free from its Rust struct
// fields (see SPEC_FULL.md, "Features supplemented").
type Stats struct {
	PagesTotal uint32
	PagesFree  uint32
	PagesUsed  uint32
}

func (a *Arena) Stats() Stats {
	lay := a.layout()
	var used uint32
	for i := uint32(0); i < a.p; i++ {
		if memutil.ReadByte(lay.pageUsedAddr(i)) != 0 {
			used++
		}
	}
	return Stats{PagesTotal: a.p, PagesFree: a.p - used, PagesUsed: used}
}
