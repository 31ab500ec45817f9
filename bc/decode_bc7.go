package bc

// DecodeBC7Block decodes a 16-byte BC7 block into a 4x4 RGBA8 tile, pitch
// bytes per row. Mode dispatch and bit layout are driven by the bc7ModeDesc
// table in tables_bc7.go.
func DecodeBC7Block(block []byte, out []byte, pitch int) {
	bs := NewBitStream(block)

	mode := -1
	for i := 0; i < 8; i++ {
		if bs.ReadBit() == 1 {
			mode = i
			break
		}
	}
	if mode < 0 {
		fillZeroTile(out, pitch, 4)
		return
	}
	desc := bc7Modes[mode]

	rotation := 0
	indexSelBit := 0
	partition := 0
	if desc.partitionBits > 0 {
		partition = int(bs.ReadBits(uint(desc.partitionBits)))
	} else if desc.rotationBits > 0 {
		rotation = int(bs.ReadBits(uint(desc.rotationBits)))
		if desc.hasIndexSel {
			indexSelBit = int(bs.ReadBit())
		}
	}

	subsets := desc.subsets
	partTable := subsetAssignment(desc, partition)

	// Endpoints: channel-major read order (all R for every subset/endpoint,
	// then all G, all B, then A if present).
	var colorEP [3][3][2]int // [channel][subset][endpoint]
	for c := 0; c < 3; c++ {
		for s := 0; s < subsets; s++ {
			for e := 0; e < 2; e++ {
				colorEP[c][s][e] = int(bs.ReadBits(uint(desc.colorBits)))
			}
		}
	}
	var alphaEP [3][2]int
	hasAlpha := desc.alphaBits > 0
	if hasAlpha {
		for s := 0; s < subsets; s++ {
			for e := 0; e < 2; e++ {
				alphaEP[s][e] = int(bs.ReadBits(uint(desc.alphaBits)))
			}
		}
	}

	// P-bits.
	colorBits := desc.colorBits
	alphaBits := desc.alphaBits
	if desc.pBitPerPair {
		for s := 0; s < subsets; s++ {
			p := int(bs.ReadBit())
			colorEP[0][s][0] = colorEP[0][s][0]<<1 | p
			colorEP[1][s][0] = colorEP[1][s][0]<<1 | p
			colorEP[2][s][0] = colorEP[2][s][0]<<1 | p
			colorEP[0][s][1] = colorEP[0][s][1]<<1 | p
			colorEP[1][s][1] = colorEP[1][s][1]<<1 | p
			colorEP[2][s][1] = colorEP[2][s][1]<<1 | p
		}
		colorBits++
	} else if desc.pBitPerEndpoint {
		for s := 0; s < subsets; s++ {
			for e := 0; e < 2; e++ {
				p := int(bs.ReadBit())
				for c := 0; c < 3; c++ {
					colorEP[c][s][e] = colorEP[c][s][e]<<1 | p
				}
				if hasAlpha {
					alphaEP[s][e] = alphaEP[s][e]<<1 | p
				}
			}
		}
		colorBits++
		if hasAlpha {
			alphaBits++
		}
	}

	// Precision-adjust: left-shift so MSB sits at bit 7, replicate MSB into
	// the newly exposed LSBs.
	for c := 0; c < 3; c++ {
		for s := 0; s < subsets; s++ {
			for e := 0; e < 2; e++ {
				colorEP[c][s][e] = precisionAdjust(colorEP[c][s][e], colorBits)
			}
		}
	}
	if hasAlpha {
		for s := 0; s < subsets; s++ {
			for e := 0; e < 2; e++ {
				alphaEP[s][e] = precisionAdjust(alphaEP[s][e], alphaBits)
			}
		}
	} else {
		for s := 0; s < subsets; s++ {
			alphaEP[s][0] = 0xFF
			alphaEP[s][1] = 0xFF
		}
	}

	// Index streams.
	idx0Bits := desc.indexBits[0]
	idx1Bits := desc.indexBits[1]
	var primary, secondary [16]int
	readIndexStream(&bs, partTable, subsets, idx0Bits, primary[:])
	if idx1Bits > 0 {
		readIndexStream(&bs, partTable, subsets, idx1Bits, secondary[:])
	}

	colorIdxBits, alphaIdxBits := idx0Bits, idx1Bits
	colorIdx, alphaIdx := primary, secondary
	if desc.hasIndexSel && indexSelBit == 1 {
		colorIdxBits, alphaIdxBits = idx1Bits, idx0Bits
		colorIdx, alphaIdx = secondary, primary
	}
	if idx1Bits == 0 {
		alphaIdx = primary
		alphaIdxBits = idx0Bits
	}

	colorWeights := bc7WeightTable(colorIdxBits)
	alphaWeights := bc7WeightTable(alphaIdxBits)

	for texel := 0; texel < 16; texel++ {
		s := int(partTable[texel])
		row, col := texel/4, texel%4
		off := row*pitch + col*4

		cw := colorWeights[colorIdx[texel]]
		aw := alphaWeights[alphaIdx[texel]]

		var rgba [4]uint8
		for c := 0; c < 3; c++ {
			e0 := colorEP[c][s][0]
			e1 := colorEP[c][s][1]
			rgba[c] = uint8((e0*(64-cw) + e1*cw + 32) >> 6)
		}
		a0 := alphaEP[s][0]
		a1 := alphaEP[s][1]
		rgba[3] = uint8((a0*(64-aw) + a1*aw + 32) >> 6)

		if desc.rotationBits > 0 {
			switch rotation {
			case 1:
				rgba[0], rgba[3] = rgba[3], rgba[0]
			case 2:
				rgba[1], rgba[3] = rgba[3], rgba[1]
			case 3:
				rgba[2], rgba[3] = rgba[3], rgba[2]
			}
		}

		out[off+0] = rgba[0]
		out[off+1] = rgba[1]
		out[off+2] = rgba[2]
		out[off+3] = rgba[3]
	}
}

func subsetAssignment(desc bc7ModeDesc, partition int) [16]uint8 {
	switch desc.subsets {
	case 3:
		return bc7PartitionTable3[partition]
	case 2:
		return bc7PartitionTable2[partition]
	default:
		var t [16]uint8
		return t
	}
}

func readIndexStream(bs *BitStream, partTable [16]uint8, subsets, bits int, out []int) {
	seenFixup := [3]bool{true} // subset 0's fixup (texel 0) is implicit.
	for texel := 0; texel < 16; texel++ {
		s := int(partTable[texel])
		isFixup := texel == 0
		if s != 0 && !seenFixup[s] {
			isFixup = true
			seenFixup[s] = true
		}
		b := bits
		if isFixup {
			b--
		}
		out[texel] = int(bs.ReadBits(uint(b)))
	}
}

func precisionAdjust(v, bits int) int {
	shift := 8 - bits
	v = v << uint(shift)
	v |= v >> uint(bits)
	return v & 0xFF
}
