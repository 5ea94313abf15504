package othello

import "math/bits"

// directions holds the (row, column) steps for the 8 compass directions.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// moveMask returns a bitset with all squares where the owner of own can play.
// This code is adapted from Edax.
func moveMask(own, opp uint64) uint64 {
	mask := opp & 0x7E7E7E7E7E7E7E7E

	flipL := mask & (own << 1)
	flipL |= mask & (flipL << 1)
	maskL := mask & (mask << 1)
	flipL |= maskL & (flipL << (2 * 1))
	flipL |= maskL & (flipL << (2 * 1))
	flipR := mask & (own >> 1)
	flipR |= mask & (flipR >> 1)
	maskR := mask & (mask >> 1)
	flipR |= maskR & (flipR >> (2 * 1))
	flipR |= maskR & (flipR >> (2 * 1))
	movesSet := (flipL << 1) | (flipR >> 1)

	flipL = mask & (own << 7)
	flipL |= mask & (flipL << 7)
	maskL = mask & (mask << 7)
	flipL |= maskL & (flipL << (2 * 7))
	flipL |= maskL & (flipL << (2 * 7))
	flipR = mask & (own >> 7)
	flipR |= mask & (flipR >> 7)
	maskR = mask & (mask >> 7)
	flipR |= maskR & (flipR >> (2 * 7))
	flipR |= maskR & (flipR >> (2 * 7))
	movesSet |= (flipL << 7) | (flipR >> 7)

	flipL = mask & (own << 9)
	flipL |= mask & (flipL << 9)
	maskL = mask & (mask << 9)
	flipL |= maskL & (flipL << (2 * 9))
	flipL |= maskL & (flipL << (2 * 9))
	flipR = mask & (own >> 9)
	flipR |= mask & (flipR >> 9)
	maskR = mask & (mask >> 9)
	flipR |= maskR & (flipR >> (2 * 9))
	flipR |= maskR & (flipR >> (2 * 9))
	movesSet |= (flipL << 9) | (flipR >> 9)

	flipL = opp & (own << 8)
	flipL |= opp & (flipL << 8)
	maskL = opp & (opp << 8)
	flipL |= maskL & (flipL << (2 * 8))
	flipL |= maskL & (flipL << (2 * 8))
	flipR = opp & (own >> 8)
	flipR |= opp & (flipR >> 8)
	maskR = opp & (opp >> 8)
	flipR |= maskR & (flipR >> (2 * 8))
	flipR |= maskR & (flipR >> (2 * 8))
	movesSet |= (flipL << 8) | (flipR >> 8)

	movesSet &^= own | opp
	return movesSet
}

// flipped returns a bitset with all opponent discs that are flipped when the owner of own plays on index.
func flipped(own, opp uint64, index int) uint64 {
	if (own|opp)&(uint64(1)<<index) != 0 {
		return 0
	}

	row, col := index/Size, index%Size
	flips := uint64(0)

	for _, dir := range directions {
		dr, dc := dir[0], dir[1]
		run := uint64(0)

		r, c := row+dr, col+dc
		for r >= 0 && r < Size && c >= 0 && c < Size {
			bit := uint64(1) << (r*Size + c)

			if opp&bit != 0 {
				run |= bit
				r, c = r+dr, c+dc
				continue
			}

			if own&bit != 0 {
				flips |= run
			}
			break
		}
	}

	return flips
}

// squares calls fn for every set bit of mask, in increasing index order.
func squares(mask uint64, fn func(index int)) {
	for mask != 0 {
		index := bits.TrailingZeros64(mask)
		mask &= mask - 1
		fn(index)
	}
}

// flipHorizontally mirrors the columns of a bitboard.
func flipHorizontally(x uint64) uint64 {
	k1 := uint64(0x5555555555555555)
	k2 := uint64(0x3333333333333333)
	k4 := uint64(0x0F0F0F0F0F0F0F0F)
	x = ((x >> 1) & k1) | ((x & k1) << 1)
	x = ((x >> 2) & k2) | ((x & k2) << 2)
	x = ((x >> 4) & k4) | ((x & k4) << 4)
	return x
}

// flipVertically mirrors the rows of a bitboard.
func flipVertically(x uint64) uint64 {
	k1 := uint64(0x00FF00FF00FF00FF)
	k2 := uint64(0x0000FFFF0000FFFF)

	x = ((x >> 8) & k1) | ((x & k1) << 8)
	x = ((x >> 16) & k2) | ((x & k2) << 16)
	x = (x >> 32) | (x << 32)
	return x
}

// flipDiagonally transposes a bitboard along the a1-h8 diagonal.
func flipDiagonally(x uint64) uint64 {
	k1 := uint64(0x5500550055005500)
	k2 := uint64(0x3333000033330000)
	k4 := uint64(0x0F0F0F0F00000000)
	t := k4 & (x ^ (x << 28))
	x ^= t ^ (t >> 28)
	t = k2 & (x ^ (x << 14))
	x ^= t ^ (t >> 14)
	t = k1 & (x ^ (x << 7))
	x ^= t ^ (t >> 7)
	return x
}

// Symmetries is the number of elements in the symmetry group of the board.
const Symmetries = 8

// Transform applies one of the 8 board symmetries to a bitboard.
func Transform(x uint64, symmetry int) uint64 {
	if symmetry&1 != 0 {
		x = flipHorizontally(x)
	}
	if symmetry&2 != 0 {
		x = flipVertically(x)
	}
	if symmetry&4 != 0 {
		x = flipDiagonally(x)
	}
	return x
}

// inverseSymmetry maps each symmetry to the one that undoes it.
var inverseSymmetry = [Symmetries]int{0, 1, 2, 3, 4, 6, 5, 7}

// TransformIndex maps a square index through a symmetry.
func TransformIndex(index, symmetry int) int {
	return bits.TrailingZeros64(Transform(uint64(1)<<index, symmetry))
}

// InverseTransformIndex undoes TransformIndex.
func InverseTransformIndex(index, symmetry int) int {
	return TransformIndex(index, inverseSymmetry[symmetry])
}
