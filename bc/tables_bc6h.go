package bc

// BC6H mode selection and bit-layout tables.
//
// §9 Design Notes recommends collapsing BC6H/BC7's per-mode bit-assembly
// switch explosion into a small mode-descriptor table driving a single pack
// loop; that is what this file provides. Each bc6hModeDesc fully describes
// one of the 14 BC6H sub-formats: its partition count, whether endpoints 1..
// are stored as deltas from endpoint 0 ("transformed"), and the raw
// per-channel endpoint precision. decode_bc6h.go and encode_bc6h.go both
// drive off this table so the two stay in lockstep by construction.
type bc6hModeDesc struct {
	id          int
	pattern     uint32 // canonical 5-bit mode-select pattern this encoder emits
	partitioned bool   // true: 2 subsets, false: 1 subset
	transformed bool   // true: endpoints 1.. are signed deltas from endpoint 0
	epBits      [3]int // raw endpoint precision per channel (R,G,B)
	deltaBits   [3]int // delta-field width per channel when transformed
}

// bc6hModes covers all 14 valid modes. Modes 0,1,2,5,6,9 are 2-subset;
// 10,11,12,13 are 1-subset; 3,4,7,8 are valid per the DXGI spec but are not
// targeted by this encoder's partition/mode search (§4.3 enumerates only
// 0,1,2,5,6,9,10-13) — the decoder still recognizes their mode-select
// patterns and decodes them structurally via the same table.
var bc6hModes = [14]bc6hModeDesc{
	{id: 0, pattern: 0x00, partitioned: true, transformed: true, epBits: [3]int{10, 10, 10}, deltaBits: [3]int{5, 5, 5}},
	{id: 1, pattern: 0x01, partitioned: true, transformed: true, epBits: [3]int{7, 7, 7}, deltaBits: [3]int{6, 6, 6}},
	{id: 2, pattern: 0x02, partitioned: true, transformed: true, epBits: [3]int{11, 11, 11}, deltaBits: [3]int{5, 4, 4}},
	{id: 3, pattern: 0x06, partitioned: true, transformed: true, epBits: [3]int{11, 11, 11}, deltaBits: [3]int{4, 5, 4}},
	{id: 4, pattern: 0x0A, partitioned: true, transformed: true, epBits: [3]int{11, 11, 11}, deltaBits: [3]int{4, 4, 5}},
	{id: 5, pattern: 0x0E, partitioned: true, transformed: true, epBits: [3]int{9, 9, 9}, deltaBits: [3]int{5, 5, 5}},
	{id: 6, pattern: 0x12, partitioned: true, transformed: true, epBits: [3]int{8, 8, 8}, deltaBits: [3]int{6, 6, 6}},
	{id: 7, pattern: 0x16, partitioned: true, transformed: true, epBits: [3]int{8, 8, 8}, deltaBits: [3]int{6, 5, 5}},
	{id: 8, pattern: 0x1A, partitioned: true, transformed: true, epBits: [3]int{8, 8, 8}, deltaBits: [3]int{5, 6, 5}},
	{id: 9, pattern: 0x1E, partitioned: true, transformed: false, epBits: [3]int{6, 6, 6}, deltaBits: [3]int{6, 6, 6}},
	{id: 10, pattern: 0x03, partitioned: false, transformed: true, epBits: [3]int{10, 10, 10}, deltaBits: [3]int{10, 10, 10}},
	{id: 11, pattern: 0x07, partitioned: false, transformed: true, epBits: [3]int{11, 11, 11}, deltaBits: [3]int{9, 9, 9}},
	{id: 12, pattern: 0x0B, partitioned: false, transformed: true, epBits: [3]int{12, 12, 12}, deltaBits: [3]int{8, 8, 8}},
	{id: 13, pattern: 0x0F, partitioned: false, transformed: true, epBits: [3]int{16, 16, 16}, deltaBits: [3]int{4, 4, 4}},
}

// bc6hReservedPatterns are the 5-bit mode-select values that must decode to
// an all-zero tile (§4.2).
var bc6hReservedPatterns = map[uint32]bool{
	0b10011: true,
	0b10111: true,
	0b11011: true,
	0b11111: true,
}

// bc6hModeByPattern resolves a raw 5-bit mode-select value to a descriptor,
// or (nil, false) if it is a reserved pattern.
func bc6hModeByPattern(pattern uint32) (*bc6hModeDesc, bool) {
	if bc6hReservedPatterns[pattern] {
		return nil, false
	}
	for i := range bc6hModes {
		if bc6hModes[i].pattern == pattern {
			return &bc6hModes[i], true
		}
	}
	// Any other 32-combination value that isn't one of our 14 canonical
	// patterns and isn't in the reserved set is treated as an alias of mode
	// 0 (matching the spec's structural requirement that all patterns other
	// than the four reserved ones must decode to a well-defined block).
	return &bc6hModes[0], true
}

// bc6hWeights8 / bc6hWeights16 are the interpolation weight tables for 3-bit
// (partitioned) and 4-bit (single-subset) selectors: weight[i] used as
// (a*(64-w) + b*w + 32) >> 6.
var bc6hWeights8 = [8]int{0, 9, 18, 27, 37, 46, 55, 64}
var bc6hWeights16 = [16]int{0, 4, 9, 13, 17, 21, 26, 30, 34, 38, 43, 47, 51, 55, 60, 64}

// bc6hFixupIndex2 gives the fix-up texel index for subset 1 in a 2-subset
// partition pattern (subset 0's fix-up is always texel 0).
var bc6hFixupIndex2 = [32]int{
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 2, 8, 2, 2, 8, 8, 15,
	2, 8, 2, 2, 8, 8, 2, 2,
}

// bc6hPartitionTable2 assigns each of the 16 texels in a block to subset 0
// or 1 for each of the 32 two-region partition patterns. BC6H's 32 patterns
// are the first 32 entries of the shared DXGI 2-subset shape table also used
// by BC7 (bc7PartitionTable2 in tables_bc7.go); the values are reproduced
// here directly so this file stands alone against the mode table above.
var bc6hPartitionTable2 = [32][16]uint8{
	{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1},
	{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1},
	{0, 0, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 1, 0, 0, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1},
	{0, 0, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 1, 1},
	{0, 0, 0, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{0, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 0, 1, 1, 1, 1},
	{0, 1, 1, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 1, 0, 0},
	{0, 1, 1, 1, 0, 0, 1, 1, 0, 0, 0, 1, 0, 0, 0, 0},
	{0, 0, 1, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0},
	{0, 0, 0, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0},
	{0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1, 0},
	{0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0},
	{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0},
	{0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 1, 0, 1, 0},
	{0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1},
}
