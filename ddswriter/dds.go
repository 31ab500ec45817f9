// Package ddswriter writes DXGI10-extended DDS container files around
// compressed BC1-BC7 block data (§6). No DDS library appears anywhere in
// the retrieved reference pack, so this package is built directly on
// encoding/binary; see DESIGN.md for the standard-library justification.
package ddswriter

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/blockcompress/bc/bc"
)

const (
	magic        = 0x20534444 // "DDS "
	headerSize   = 124
	pixelFmtSize = 32
	dx10HdrSize  = 20

	ddsdCaps        = 0x1
	ddsdHeight      = 0x2
	ddsdWidth       = 0x4
	ddsdPixelFormat = 0x1000
	ddsdLinearSize  = 0x80000

	ddpfFourCC = 0x4

	ddscapsTexture = 0x1000

	fourCCDX10 = 0x30315844 // "DX10"

	d3d10ResourceDimensionTexture2D = 3
)

// Write encodes a DDS container for a width x height image compressed as
// variant, with the given block payload, and writes it to w.
func Write(w io.Writer, variant bc.CompressionVariant, width, height int, blocks []byte) error {
	need := variant.BlocksByteSize(width, height)
	if len(blocks) != need {
		return fmt.Errorf("ddswriter: blocks has %d bytes, variant/dimensions need %d", len(blocks), need)
	}

	pitchOrLinearSize := uint32(variant.BlockByteSize()) * uint32((width+3)/4) * uint32((height+3)/4)

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], headerSize)
	binary.LittleEndian.PutUint32(hdr[4:8], ddsdCaps|ddsdHeight|ddsdWidth|ddsdPixelFormat|ddsdLinearSize)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(height))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(width))
	binary.LittleEndian.PutUint32(hdr[16:20], pitchOrLinearSize)
	binary.LittleEndian.PutUint32(hdr[20:24], 0) // depth
	binary.LittleEndian.PutUint32(hdr[24:28], 1) // mip count

	pixOff := 72
	binary.LittleEndian.PutUint32(hdr[pixOff:pixOff+4], pixelFmtSize)
	binary.LittleEndian.PutUint32(hdr[pixOff+4:pixOff+8], ddpfFourCC)
	binary.LittleEndian.PutUint32(hdr[pixOff+8:pixOff+12], fourCCDX10)

	capsOff := pixOff + pixelFmtSize
	binary.LittleEndian.PutUint32(hdr[capsOff:capsOff+4], ddscapsTexture)

	var magicBuf [4]byte
	binary.LittleEndian.PutUint32(magicBuf[:], magic)
	if _, err := w.Write(magicBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	var dx10 [dx10HdrSize]byte
	binary.LittleEndian.PutUint32(dx10[0:4], variant.DXGIFormat())
	binary.LittleEndian.PutUint32(dx10[4:8], d3d10ResourceDimensionTexture2D)
	binary.LittleEndian.PutUint32(dx10[8:12], 0) // misc flag
	binary.LittleEndian.PutUint32(dx10[12:16], 1) // array size
	binary.LittleEndian.PutUint32(dx10[16:20], 0) // misc flags2
	if _, err := w.Write(dx10[:]); err != nil {
		return err
	}

	_, err := w.Write(blocks)
	return err
}
