package bc

// Public API (§4.5): single-image CPU compression/decompression entry
// points. The GPU path (package gpu) performs the same per-block work in
// bulk on-device; these functions are the CPU reference and the fallback
// when no device is available.

// CompressRGBA8 CPU-encodes an RGBA8 image of the given variant. width and
// height need not be multiples of 4; partial edge blocks are padded by
// clamping to the last valid row/column, matching the decode side's
// expectation of full 4x4 coverage.
func CompressRGBA8(variant CompressionVariant, width, height int, pix []byte) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrBadDimensions, "width=%d height=%d", width, height)
	}
	if variant.Tag == TagBC6H {
		// sRGB -> linear -> half float, then the half-float entry point.
		half := make([]byte, width*height*8)
		for i := 0; i < width*height; i++ {
			for c := 0; c < 3; c++ {
				putF16(half[i*8+c*2:], f32ToF16(srgbToLinear(pix[i*4+c])))
			}
			putF16(half[i*8+6:], u8ToF16(pix[i*4+3]))
		}
		return CompressBC6H(width, height, half, false, variant.BC6H)
	}
	blocksX, blocksY := blockGrid(width, height)
	out := make([]byte, variant.BlocksByteSize(width, height))
	blockSize := variant.BlockByteSize()
	pitch := width * 4

	padded := padToBlockGrid(pix, width, height, pitch, 4, blocksX, blocksY)
	paddedPitch := blocksX * 4 * 4

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockOff := (by*blocksX + bx) * blockSize
			tileOff := by*4*paddedPitch + bx*16
			dst := out[blockOff : blockOff+blockSize]
			src := padded[tileOff:]
			encodeBlockRGBA8(variant, src, paddedPitch, dst)
		}
	}
	return out, nil
}

// CompressBC6H CPU-encodes a half-float RGBA16F image (8 bytes/pixel) into
// BC6H blocks.
func CompressBC6H(width, height int, pix []byte, isSigned bool, settings BC6HSettings) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrBadDimensions, "width=%d height=%d", width, height)
	}
	blocksX, blocksY := blockGrid(width, height)
	out := make([]byte, blocksX*blocksY*16)
	pitch := width * 8
	paddedPitch := blocksX * 4 * 8
	padded := padToBlockGrid(pix, width, height, pitch, 8, blocksX, blocksY)

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockOff := (by*blocksX + bx) * 16
			tileOff := by*4*paddedPitch + bx*32
			EncodeBC6HBlock(padded[tileOff:], paddedPitch, out[blockOff:blockOff+16], isSigned, settings)
		}
	}
	return out, nil
}

func encodeBlockRGBA8(variant CompressionVariant, src []byte, pitch int, dst []byte) {
	switch variant.Tag {
	case TagBC1:
		EncodeBC1Block(src, pitch, dst, 0)
	case TagBC2:
		EncodeBC2Block(src, pitch, dst)
	case TagBC3:
		EncodeBC3Block(src, pitch, dst)
	case TagBC4:
		EncodeBC4Block(src, pitch, dst)
	case TagBC5:
		EncodeBC5Block(src, pitch, dst)
	case TagBC7:
		EncodeBC7Block(src, pitch, dst, variant.BC7)
	default:
		fatalf("encodeBlockRGBA8: unsupported variant %s", variant.Name())
	}
}

// padToBlockGrid copies a width x height image into a blocksX*4 x blocksY*4
// buffer, clamping edge pixels outward so partial blocks still compress
// sensibly (§4.5 edge-case handling for non-multiple-of-4 dimensions).
func padToBlockGrid(pix []byte, width, height, pitch, bpp, blocksX, blocksY int) []byte {
	paddedW := blocksX * 4
	paddedH := blocksY * 4
	if paddedW == width && paddedH == height {
		return pix
	}
	paddedPitch := paddedW * bpp
	out := make([]byte, paddedPitch*paddedH)
	for y := 0; y < paddedH; y++ {
		sy := y
		if sy >= height {
			sy = height - 1
		}
		for x := 0; x < paddedW; x++ {
			sx := x
			if sx >= width {
				sx = width - 1
			}
			copy(out[y*paddedPitch+x*bpp:], pix[sy*pitch+sx*bpp:sy*pitch+sx*bpp+bpp])
		}
	}
	return out
}
