package fixalloc

// classForSize maps a requested size to a size-class index. The returned
// bool is true when the class is small (servable by a slab page); false
// means the request must go through the multi-page path.
func classForSize(size uint32, minLog2, k uint) (uint, bool) {
	if size <= 1 {
		return 0, k > 0
	}
	lg := CeilLog2(size)
	var class uint
	if lg > minLog2 {
		class = lg - minLog2
	}
	return class, class < k
}

// classForAlignedSize is classForSize with the caller's alignment folded
// in: if align demands a block larger than the size alone would produce,
// the class is bumped up to the smallest one that satisfies it. align must
// already be a power of two.
func classForAlignedSize(size, align uint32, minLog2, k uint) (uint, bool) {
	class, _ := classForSize(size, minLog2, k)
	if align > 1 {
		alignLog2 := CeilLog2(align)
		var alignClass uint
		if alignLog2 > minLog2 {
			alignClass = alignLog2 - minLog2
		}
		if alignClass > class {
			class = alignClass
		}
	}
	return class, class < k
}

// blockSizeForClass returns the block size in bytes of size class `class`
// given the minimum block size's log2.
func blockSizeForClass(minLog2, class uint) uint32 {
	return uint32(1) << (minLog2 + class)
}
