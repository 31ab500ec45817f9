package bc

// This file implements §4.2.x: image-level decompress dispatch. Each helper
// validates input/output slice lengths, walks the block grid, and invokes
// the per-variant block decoder into the right output slice.

func blockGrid(width, height int) (blocksX, blocksY int) {
	return (width + 3) / 4, (height + 3) / 4
}

// DecompressBlocksAsRGBA8 decodes blocks (an image compressed with variant,
// width x height texels) into dst, an RGBA8 buffer of width*height*4 bytes.
func DecompressBlocksAsRGBA8(variant CompressionVariant, width, height int, blocks, dst []byte) {
	if width <= 0 || height <= 0 || width%4 != 0 || height%4 != 0 {
		fatalf("DecompressBlocksAsRGBA8: width/height must be positive multiples of 4, got %dx%d", width, height)
	}
	need := variant.BlocksByteSize(width, height)
	if len(blocks) < need {
		fatalf("DecompressBlocksAsRGBA8: blocks too small: need %d, got %d", need, len(blocks))
	}
	if len(dst) < width*height*4 {
		fatalf("DecompressBlocksAsRGBA8: dst too small: need %d, got %d", width*height*4, len(dst))
	}

	bw, bh := blockGrid(width, height)
	pitch := width * 4
	blockSize := variant.BlockByteSize()

	var tile [16 * 4]byte
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			blk := blocks[(by*bw+bx)*blockSize : (by*bw+bx)*blockSize+blockSize]
			decodeBlockRGBA8(variant, blk, tile[:], 16)
			copyTile(dst, pitch, bx*4, by*4, tile[:], 16, 4)
		}
	}
}

func decodeBlockRGBA8(variant CompressionVariant, blk, tile []byte, tilePitch int) {
	switch variant.Tag {
	case TagBC1:
		DecodeBC1Block(blk, tile, tilePitch)
	case TagBC2:
		DecodeBC2Block(blk, tile, tilePitch)
	case TagBC3:
		DecodeBC3Block(blk, tile, tilePitch)
	case TagBC4:
		var chan1 [16]byte
		DecodeBC4Block(blk, chan1[:], 4)
		for i := 0; i < 16; i++ {
			tile[i*4+0] = chan1[i]
			tile[i*4+1] = 0
			tile[i*4+2] = 0
			tile[i*4+3] = 0xFF
		}
	case TagBC5:
		var chan2 [32]byte
		DecodeBC5Block(blk, chan2[:], 8)
		for i := 0; i < 16; i++ {
			tile[i*4+0] = chan2[i*2+0]
			tile[i*4+1] = chan2[i*2+1]
			tile[i*4+2] = 0
			tile[i*4+3] = 0xFF
		}
	case TagBC6H:
		var half [16 * 8]byte
		DecodeBC6HBlock(blk, half[:], 32, false)
		for i := 0; i < 16; i++ {
			for c := 0; c < 4; c++ {
				tile[i*4+c] = clamp255(float64(f16ToF32(getF16(half[(i*4+c)*2:]))) * 255)
			}
		}
	case TagBC7:
		DecodeBC7Block(blk, tile, tilePitch)
	default:
		fatalf("decodeBlockRGBA8: unsupported variant %v", variant.Tag)
	}
}

func copyTile(dst []byte, dstPitch, x0, y0 int, tile []byte, tilePitch, bytesPerPixel int) {
	for row := 0; row < 4; row++ {
		srcOff := row * tilePitch
		dstOff := (y0+row)*dstPitch + x0*bytesPerPixel
		copy(dst[dstOff:dstOff+4*bytesPerPixel], tile[srcOff:srcOff+4*bytesPerPixel])
	}
}

// DecompressBlocksAsRGBA16F decodes blocks into dst as RGBA half-float
// (2 bytes/channel) texels. Intended for BC6H HDR output; BC1-5/BC7 LDR
// results are widened with a trivial 8-bit-to-half conversion.
func DecompressBlocksAsRGBA16F(variant CompressionVariant, width, height int, blocks, dst []byte) {
	if width <= 0 || height <= 0 || width%4 != 0 || height%4 != 0 {
		fatalf("DecompressBlocksAsRGBA16F: width/height must be positive multiples of 4, got %dx%d", width, height)
	}
	need := variant.BlocksByteSize(width, height)
	if len(blocks) < need {
		fatalf("DecompressBlocksAsRGBA16F: blocks too small: need %d, got %d", need, len(blocks))
	}
	if len(dst) < width*height*4*2 {
		fatalf("DecompressBlocksAsRGBA16F: dst too small: need %d, got %d", width*height*4*2, len(dst))
	}

	bw, bh := blockGrid(width, height)
	pitch := width * 4 * 2
	blockSize := variant.BlockByteSize()

	var tile [16 * 4 * 2]byte
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			blk := blocks[(by*bw+bx)*blockSize : (by*bw+bx)*blockSize+blockSize]
			if variant.Tag == TagBC6H {
				DecodeBC6HBlock(blk, tile[:], 32, false)
			} else {
				var rgba8 [16 * 4]byte
				decodeBlockRGBA8(variant, blk, rgba8[:], 16)
				for i := 0; i < 16; i++ {
					for c := 0; c < 4; c++ {
						putF16(tile[(i*4+c)*2:], u8ToF16(rgba8[i*4+c]))
					}
				}
			}
			copyTile(dst, pitch, bx*4, by*4, tile[:], 32, 8)
		}
	}
}

// DecompressBlocksAsRGBA32F decodes blocks into dst as RGBA float32 texels.
func DecompressBlocksAsRGBA32F(variant CompressionVariant, width, height int, blocks []byte, dst []float32) {
	if width <= 0 || height <= 0 || width%4 != 0 || height%4 != 0 {
		fatalf("DecompressBlocksAsRGBA32F: width/height must be positive multiples of 4, got %dx%d", width, height)
	}
	need := variant.BlocksByteSize(width, height)
	if len(blocks) < need {
		fatalf("DecompressBlocksAsRGBA32F: blocks too small: need %d, got %d", need, len(blocks))
	}
	if len(dst) < width*height*4 {
		fatalf("DecompressBlocksAsRGBA32F: dst too small: need %d, got %d", width*height*4, len(dst))
	}

	halfBuf := make([]byte, width*height*4*2)
	DecompressBlocksAsRGBA16F(variant, width, height, blocks, halfBuf)
	for i := range dst {
		dst[i] = f16ToF32(getF16(halfBuf[i*2:]))
	}
}

func u8ToF16(v uint8) uint16 {
	return f32ToF16(float32(v) / 255.0)
}

func putF16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func getF16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
