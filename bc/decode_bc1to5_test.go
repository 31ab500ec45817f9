package bc

import "testing"

func TestDecodeBC1Black(t *testing.T) {
	block := make([]byte, 8)
	out := make([]byte, 64)
	DecodeBC1Block(block, out, 16)
	for texel := 0; texel < 16; texel++ {
		off := texel * 4
		want := [4]byte{0, 0, 0, 255}
		got := [4]byte{out[off], out[off+1], out[off+2], out[off+3]}
		if got != want {
			t.Fatalf("S1 BC1 black: texel %d: got %v, want %v", texel, got, want)
		}
	}
}

func TestDecodeBC1Red(t *testing.T) {
	block := []byte{0x00, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	out := make([]byte, 64)
	DecodeBC1Block(block, out, 16)
	for texel := 0; texel < 16; texel++ {
		off := texel * 4
		want := [4]byte{255, 0, 0, 255}
		got := [4]byte{out[off], out[off+1], out[off+2], out[off+3]}
		if got != want {
			t.Fatalf("S2 BC1 red: texel %d: got %v, want %v", texel, got, want)
		}
	}
}

func TestDecodeBC1RedGreenChecker(t *testing.T) {
	block := []byte{0x00, 0xF8, 0xE0, 0x07, 0x55, 0x55, 0x55, 0x55}
	out := make([]byte, 64)
	DecodeBC1Block(block, out, 16)
	for texel := 0; texel < 16; texel++ {
		off := texel * 4
		want := [4]byte{0, 255, 0, 255}
		got := [4]byte{out[off], out[off+1], out[off+2], out[off+3]}
		if got != want {
			t.Fatalf("S3 BC1 checker: texel %d: got %v, want %v", texel, got, want)
		}
	}
}

func TestDecodeBC2AlphaGradient(t *testing.T) {
	block := make([]byte, 16)
	for texel := 0; texel < 16; texel++ {
		byteIdx := texel / 2
		if texel%2 == 0 {
			block[byteIdx] |= byte(texel)
		} else {
			block[byteIdx] |= byte(texel) << 4
		}
	}
	block[8] = 0x00
	block[9] = 0xF8
	block[10] = 0x00
	block[11] = 0x00

	out := make([]byte, 64)
	DecodeBC2Block(block, out, 16)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			texel := row*4 + col
			off := texel * 4
			wantAlpha := byte((texel) * 17)
			if out[off] != 255 || out[off+1] != 0 || out[off+2] != 0 || out[off+3] != wantAlpha {
				t.Fatalf("S4 BC2 gradient: texel %d: got (%d,%d,%d,%d), want (255,0,0,%d)", texel, out[off], out[off+1], out[off+2], out[off+3], wantAlpha)
			}
		}
	}
}

func TestDecodeBC4Gradient(t *testing.T) {
	block := []byte{0x00, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00}
	out := make([]byte, 16)
	DecodeBC4Block(block, out, 4)
	for texel := 0; texel < 16; texel++ {
		want := byte(0)
		if texel < 6 {
			want = 255
		}
		if out[texel] != want {
			t.Fatalf("S5 BC4 gradient: texel %d: got %d, want %d", texel, out[texel], want)
		}
	}
}

func TestDecodeBC7Mode6Constant(t *testing.T) {
	block := []byte{0x40, 0xAF, 0xF6, 0x0B, 0xFD, 0x2E, 0xFF, 0xFF, 0x11, 0x71, 0x10, 0xA1, 0x21, 0xF2, 0x33, 0x73}
	out := make([]byte, 64)
	DecodeBC7Block(block, out, 16)
	for texel := 0; texel < 10; texel++ {
		off := texel * 4
		r, g, b := out[off], out[off+1], out[off+2]
		if r < 0xB0 || r > 0xC5 || g < 0xB0 || g > 0xC5 || b < 0xB0 || b > 0xC5 {
			t.Errorf("S6 BC7 mode-6: texel %d: got (%d,%d,%d), want near-grey ~(0xBD,0xBD,0xBD)", texel, r, g, b)
		}
	}
}

func TestDecoderNeverPanicsOnArbitraryBlocks(t *testing.T) {
	variants := []CompressionVariant{
		BC1Variant(), BC2Variant(), BC3Variant(), BC4Variant(), BC5Variant(),
		BC6HVariant(BC6HBasic()), BC7Variant(BC7OpaqueBasic()),
	}
	for _, v := range variants {
		block := make([]byte, v.BlockByteSize())
		for seed := 0; seed < 256; seed++ {
			for i := range block {
				block[i] = byte(seed*7 + i*13)
			}
			out := make([]byte, 64*2)
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("decoder panicked on variant %s seed %d: %v", v.Name(), seed, r)
					}
				}()
				decodeBlockRGBA8(v, block, out, 16)
			}()
		}
	}
}
