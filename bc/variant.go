package bc

// VariantTag identifies a CompressionVariant's shape, independent of any
// embedded settings. Pipeline and bind-group-layout caches in the GPU engine
// key exclusively on this tag (§3 invariants), so two variants with the same
// tag but different settings must compare equal under it.
type VariantTag uint8

const (
	TagBC1 VariantTag = iota
	TagBC2
	TagBC3
	TagBC4
	TagBC5
	TagBC6H
	TagBC7
)

func (t VariantTag) String() string {
	switch t {
	case TagBC1:
		return "BC1"
	case TagBC2:
		return "BC2"
	case TagBC3:
		return "BC3"
	case TagBC4:
		return "BC4"
	case TagBC5:
		return "BC5"
	case TagBC6H:
		return "BC6H"
	case TagBC7:
		return "BC7"
	default:
		return "unknown"
	}
}

// CompressionVariant is a tagged union over the seven BC formats.
// BC6HSettings/BC7Settings ride along for the CPU/GPU encoders. The GPU
// engine's pipeline caches key on Tag alone; Go's == on two
// CompressionVariant values also compares the settings.
type CompressionVariant struct {
	Tag  VariantTag
	BC6H BC6HSettings
	BC7  BC7Settings
}

// BC1Variant, BC2Variant, ... construct the fixed-shape variants.
func BC1Variant() CompressionVariant { return CompressionVariant{Tag: TagBC1} }
func BC2Variant() CompressionVariant { return CompressionVariant{Tag: TagBC2} }
func BC3Variant() CompressionVariant { return CompressionVariant{Tag: TagBC3} }
func BC4Variant() CompressionVariant { return CompressionVariant{Tag: TagBC4} }
func BC5Variant() CompressionVariant { return CompressionVariant{Tag: TagBC5} }

// BC6HVariant constructs a BC6H variant with the given encoder settings. The
// settings only affect CPU/GPU encoding, not decoding.
func BC6HVariant(s BC6HSettings) CompressionVariant {
	return CompressionVariant{Tag: TagBC6H, BC6H: s}
}

// BC7Variant constructs a BC7 variant with the given encoder settings.
func BC7Variant(s BC7Settings) CompressionVariant {
	return CompressionVariant{Tag: TagBC7, BC7: s}
}

// BlockByteSize returns the size in bytes of one compressed 4x4 block: 8 for
// BC1/BC4, 16 for everything else.
func (v CompressionVariant) BlockByteSize() int {
	switch v.Tag {
	case TagBC1, TagBC4:
		return 8
	default:
		return 16
	}
}

// BlocksByteSize returns the total compressed size for a w x h image:
// ceil(w/4) * ceil(h/4) * BlockByteSize().
func (v CompressionVariant) BlocksByteSize(width, height int) int {
	bw := (width + 3) / 4
	bh := (height + 3) / 4
	return bw * bh * v.BlockByteSize()
}

// ShaderEntryPoint returns the WGSL compute entry point name used by the GPU
// engine to select a pipeline for this variant's tag.
func (v CompressionVariant) ShaderEntryPoint() string {
	switch v.Tag {
	case TagBC1:
		return "compress_bc1"
	case TagBC2:
		return "compress_bc2"
	case TagBC3:
		return "compress_bc3"
	case TagBC4:
		return "compress_bc4"
	case TagBC5:
		return "compress_bc5"
	case TagBC6H:
		return "compress_bc6h"
	case TagBC7:
		return "compress_bc7"
	default:
		return ""
	}
}

// DXGIFormat returns the sRGB-preferring DXGI format code used for DDS
// output (§6), matching the variant-to-format table in the specification.
func (v CompressionVariant) DXGIFormat() uint32 {
	switch v.Tag {
	case TagBC1:
		return dxgiFormatBC1UnormSRGB
	case TagBC2:
		return dxgiFormatBC2UnormSRGB
	case TagBC3:
		return dxgiFormatBC3UnormSRGB
	case TagBC4:
		return dxgiFormatBC4Unorm
	case TagBC5:
		return dxgiFormatBC5Unorm
	case TagBC6H:
		return dxgiFormatBC6HUF16
	case TagBC7:
		return dxgiFormatBC7UnormSRGB
	default:
		return 0
	}
}

// Name returns a human-readable name, e.g. for diagnostics.
func (v CompressionVariant) Name() string { return v.Tag.String() }

// DXGI format codes used by DDS output. Kept here (rather than in ddswriter)
// since they are intrinsic attributes of the variant, per §3.
const (
	dxgiFormatBC1UnormSRGB = 72
	dxgiFormatBC2UnormSRGB = 75
	dxgiFormatBC3UnormSRGB = 78
	dxgiFormatBC4Unorm     = 80
	dxgiFormatBC5Unorm     = 83
	dxgiFormatBC6HUF16     = 95
	dxgiFormatBC7UnormSRGB = 99
)
