package gpu

import (
	"testing"

	"github.com/blockcompress/bc/bc"
)

// These tests exercise the host-side ring-buffer packing and offset
// arithmetic without a real GPU adapter (none is available in this
// environment); they are the Go-native equivalent of the original Rust
// suite's tests/multi_tasks.rs batching coverage (see SPEC_FULL.md's
// SUPPLEMENTED FEATURES section).

func TestUniformsEncodingRoundTrip(t *testing.T) {
	u := Uniforms{BlocksX: 12, BlocksY: 7, Flags: 3}
	enc := encodeUniforms(u)
	if len(enc) != uniformsSize {
		t.Fatalf("encodeUniforms: got %d bytes, want %d", len(enc), uniformsSize)
	}
	if got := enc[0] | enc[1]<<8 | enc[2]<<16 | enc[3]<<24; uint32(got) != u.BlocksX {
		t.Errorf("BlocksX round-trip: got %d, want %d", got, u.BlocksX)
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ n, align, want uint64 }{
		{0, 256, 0},
		{1, 256, 256},
		{256, 256, 256},
		{257, 256, 512},
		{12, 4, 12},
		{13, 4, 16},
	}
	for _, c := range cases {
		if got := alignUp(c.n, c.align); got != c.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", c.n, c.align, got, c.want)
		}
	}
}

func TestSettingsStrideByTag(t *testing.T) {
	if settingsStrideFor(bc.TagBC1) == settingsStrideFor(bc.TagBC7) {
		t.Errorf("BC1 and BC7 settings strides should differ: BC7 carries mode-search tuning, BC1 does not")
	}
	if settingsStrideFor(bc.TagBC6H) != settingsStrideFor(bc.TagBC7) {
		t.Errorf("BC6H and BC7 both use the 256-byte settings slot")
	}
}

func TestEncodeSettingsPayloadBC7ModeSelection(t *testing.T) {
	settings := bc.BC7OpaqueUltraFast()
	v := bc.BC7Variant(settings)
	payload := encodeSettingsPayload(v)
	if len(payload) != 256 {
		t.Fatalf("BC7 settings payload: got %d bytes, want 256", len(payload))
	}
	// ModeSelection follows the eight RefineIterations words.
	for i, f := range settings.ModeSelection {
		got := uint32(payload[32+i*4]) | uint32(payload[33+i*4])<<8 | uint32(payload[34+i*4])<<16 | uint32(payload[35+i*4])<<24
		if got != boolU32(f) {
			t.Errorf("ModeSelection[%d]: payload word %d, want %d", i, got, boolU32(f))
		}
	}
}

// fakeTaskOffsets replicates AddCompressionTask's uniform-offset reservation
// without a device, and packs destination regions at 256-byte alignment the
// way a caller sharing one destination buffer might (AddCompressionTask takes
// the destination offset from the caller), to pin that every task's regions
// are non-overlapping and alignment-respecting.
func fakeTaskOffsets(tasks []struct{ w, h int; tag bc.VariantTag }) (uniformOffs, destOffs []uint64) {
	var uniformUsed, destUsed uint64
	for _, tk := range tasks {
		uOff := alignUp(uniformUsed, uniformStride)
		uniformUsed = uOff + uniformStride
		uniformOffs = append(uniformOffs, uOff)

		v := bc.CompressionVariant{Tag: tk.tag}
		size := uint64(v.BlocksByteSize(tk.w, tk.h))
		dOff := alignUp(destUsed, 256)
		destUsed = dOff + size
		destOffs = append(destOffs, dOff)
	}
	return
}

func TestMultiTaskOffsetsNonOverlapping(t *testing.T) {
	tasks := []struct {
		w, h int
		tag  bc.VariantTag
	}{
		{64, 64, bc.TagBC1},
		{128, 64, bc.TagBC7},
		{32, 32, bc.TagBC6H},
	}
	uniformOffs, destOffs := fakeTaskOffsets(tasks)

	for i := 1; i < len(uniformOffs); i++ {
		if uniformOffs[i] < uniformOffs[i-1]+uniformStride {
			t.Errorf("uniform offsets overlap: task %d at %d, task %d at %d", i-1, uniformOffs[i-1], i, uniformOffs[i])
		}
	}
	for i := range destOffs {
		if destOffs[i]%256 != 0 {
			t.Errorf("dest offset %d not 256-byte aligned: %d", i, destOffs[i])
		}
	}
}
