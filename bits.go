package fixalloc

// deBruijn32 is the multiply constant used to map a power of two to the
// index of its single set bit in one multiply-and-shift.
const deBruijn32 = 0x06EB14F9

// deBruijnLog2 maps (v*deBruijn32)>>27 to log2(v) for a power-of-two v.
var deBruijnLog2 = [32]uint{
	0, 1, 16, 2, 29, 17, 3, 22,
	30, 20, 18, 11, 13, 4, 7, 23,
	31, 15, 28, 21, 19, 10, 12, 6,
	14, 27, 9, 5, 26, 8, 25, 24,
}

// RoundUpPow2 rounds n up to the next power of two. n must be >= 1.
func RoundUpPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

// CeilLog2 returns ceil(log2(n)) for n >= 1. CeilLog2(1) is 0.
func CeilLog2(n uint32) uint {
	if n <= 1 {
		return 0
	}
	v := RoundUpPow2(n)
	return deBruijnLog2[(v*deBruijn32)>>27]
}

func isPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
