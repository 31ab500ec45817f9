package bc

import "testing"

func TestBC6HModeByPatternReservedRejected(t *testing.T) {
	for pattern := range bc6hReservedPatterns {
		if _, ok := bc6hModeByPattern(pattern); ok {
			t.Errorf("reserved pattern %#05b should not resolve to a mode", pattern)
		}
	}
}

func TestBC6HModeByPatternKnownModesResolve(t *testing.T) {
	for _, m := range bc6hModes {
		desc, ok := bc6hModeByPattern(m.pattern)
		if !ok {
			t.Fatalf("mode %d pattern %#05b: expected to resolve", m.id, m.pattern)
		}
		if desc.id != m.id {
			t.Errorf("mode %d pattern %#05b: resolved to id %d", m.id, m.pattern, desc.id)
		}
	}
}

func TestBC7FixupTableSubsetZeroAlwaysTexelZero(t *testing.T) {
	for p := 0; p < 64; p++ {
		if bc7FixupIndex2[p][0] != 0 {
			t.Fatalf("2-subset fixup table partition %d: subset 0 fixup should always be texel 0", p)
		}
	}
}

func TestBC7PartitionTablesCoverAllSubsets(t *testing.T) {
	for p := 0; p < 64; p++ {
		seen := map[uint8]bool{}
		for _, s := range bc7PartitionTable2[p] {
			seen[s] = true
		}
		if len(seen) < 1 || len(seen) > 2 {
			t.Errorf("2-subset partition %d: found %d distinct subsets, want 1 or 2", p, len(seen))
		}
	}
}

func TestBC7WeightTableEndpoints(t *testing.T) {
	for _, bits := range []int{2, 3, 4} {
		w := bc7WeightTable(bits)
		if w[0] != 0 {
			t.Errorf("bits=%d: weight[0] = %d, want 0", bits, w[0])
		}
		if w[len(w)-1] != 64 {
			t.Errorf("bits=%d: weight[last] = %d, want 64", bits, w[len(w)-1])
		}
	}
}

func TestVariantBlockByteSize(t *testing.T) {
	cases := []struct {
		v    CompressionVariant
		want int
	}{
		{BC1Variant(), 8},
		{BC2Variant(), 16},
		{BC3Variant(), 16},
		{BC4Variant(), 8},
		{BC5Variant(), 16},
		{BC6HVariant(BC6HBasic()), 16},
		{BC7Variant(BC7OpaqueBasic()), 16},
	}
	for _, c := range cases {
		if got := c.v.BlockByteSize(); got != c.want {
			t.Errorf("%s: BlockByteSize() = %d, want %d", c.v.Name(), got, c.want)
		}
	}
}

func TestVariantBlocksByteSizeRoundsUpToBlockGrid(t *testing.T) {
	v := BC1Variant()
	if got := v.BlocksByteSize(5, 5); got != 2*2*8 {
		t.Errorf("BlocksByteSize(5,5) = %d, want %d", got, 2*2*8)
	}
}
