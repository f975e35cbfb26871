package fixalloc

import (
	"errors"

	"go.uber.org/multierr"
)

// Construction precondition violations. A Config with several bad fields
// reports all of them at once via multierr, rather than stopping at the
// first.
var (
	ErrZeroBase                 = errors.New("fixalloc: base must be > 0")
	ErrPageSizeNotPow2          = errors.New("fixalloc: page size must be a power of two")
	ErrPageSizeNotLessThanLen   = errors.New("fixalloc: page size must be < len")
	ErrLenNotMultipleOfPageSize = errors.New("fixalloc: len must be a multiple of page size")
	ErrMinTooSmall              = errors.New("fixalloc: min must be >= the size of a pointer-sized integer")
	ErrMinNotPow2               = errors.New("fixalloc: min must be a power of two")
	ErrMinExceedsPageSize       = errors.New("fixalloc: min must be <= page size")
	ErrPageSizeNotMultipleOfMin = errors.New("fixalloc: page size must be a multiple of min")
	ErrHeaderOverflowsFirstPage = errors.New("fixalloc: header metadata does not fit in the first page")
)

// Runtime errors surfaced from the allocate/free/reallocate façade.
var (
	// ErrExhausted is returned when allocate finds no free block and no
	// free page (small path) or no sufficient run (large path). It is the
	// façade's only out-of-space signal; requests that can never be served
	// get ErrRequestTooLarge or ErrUnsupportedAlignment instead.
	ErrExhausted = errors.New("fixalloc: arena exhausted")

	// ErrRequestTooLarge is returned when a large request needs more
	// pages than exist in the whole arena.
	ErrRequestTooLarge = errors.New("fixalloc: request exceeds arena capacity")

	// ErrUnsupportedAlignment is returned when a large request asks for
	// an alignment finer than page alignment can guarantee. The base spec
	// treats this as a build-time precondition on the host; this module
	// turns the violation into an error instead of undefined behavior.
	ErrUnsupportedAlignment = errors.New("fixalloc: alignment exceeds page size")
)

// Validate checks every construction precondition in spec.md §6 and
// reports every violation found, not just the first.
func (c Config) Validate() error {
	var errs error

	if c.Base == 0 {
		errs = multierr.Append(errs, ErrZeroBase)
	}
	if c.PageSize == 0 || !isPow2(c.PageSize) {
		errs = multierr.Append(errs, ErrPageSizeNotPow2)
	}
	if c.PageSize == 0 || c.PageSize >= c.Len {
		errs = multierr.Append(errs, ErrPageSizeNotLessThanLen)
	}
	if c.PageSize != 0 && c.Len%c.PageSize != 0 {
		errs = multierr.Append(errs, ErrLenNotMultipleOfPageSize)
	}
	if c.Min < uint32(wordSizeBytes()) {
		errs = multierr.Append(errs, ErrMinTooSmall)
	}
	if c.Min == 0 || !isPow2(c.Min) {
		errs = multierr.Append(errs, ErrMinNotPow2)
	}
	if c.PageSize != 0 && c.Min > c.PageSize {
		errs = multierr.Append(errs, ErrMinExceedsPageSize)
	}
	if c.PageSize != 0 && c.Min != 0 && c.PageSize%c.Min != 0 {
		errs = multierr.Append(errs, ErrPageSizeNotMultipleOfMin)
	}
	if errs != nil {
		return errs
	}

	// Note: PAGE_SIZE <= 2^32-1 from spec.md §6 is enforced structurally —
	// Config.PageSize is a uint32, whose range is exactly [0, 2^32-1].

	minLog2, k, p := derive(c)
	if headerSize(k, p) > uintptr(c.PageSize) {
		return ErrHeaderOverflowsFirstPage
	}
	_ = minLog2
	return nil
}
