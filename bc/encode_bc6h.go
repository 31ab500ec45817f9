package bc

// BC6H CPU encoder (§4.3). The mode/partition search is governed by
// BC6HSettings: a fast path always emits single-subset mode 13 (the widest
// raw endpoint precision, cheapest to evaluate), while the full search tries
// every mode named in §4.3 and keeps the lowest-error result, refining
// endpoints RefineIterations1P/2P times per candidate.

// bc6hCandidateModes are the mode ids targeted by the encoder (§4.3): the
// decoder recognizes all 14 via tables_bc6h.go, but only these are searched.
var bc6hCandidateModes = []int{13, 11, 10, 12, 0, 1, 2, 5, 6, 9}

// EncodeBC6HBlock encodes a 4x4 tile of RGBA half-float texels (8 bytes/pixel)
// into a 16-byte BC6H block. isSigned selects SF16 vs UF16 quantization.
func EncodeBC6HBlock(pix []byte, pitch int, out []byte, isSigned bool, settings BC6HSettings) {
	var planes blockPlanes
	for texel := 0; texel < 16; texel++ {
		row, col := texel/4, texel%4
		off := row*pitch + col*8
		planes.r[texel] = float32(f16ToF32(getF16(pix[off+0:])))
		planes.g[texel] = float32(f16ToF32(getF16(pix[off+2:])))
		planes.b[texel] = float32(f16ToF32(getF16(pix[off+4:])))
	}

	candidates := bc6hCandidateModes
	if !settings.SlowMode {
		candidates = candidates[:1]
	} else if settings.FastMode {
		candidates = candidates[:4]
	}

	bestErr := -1.0
	var best []byte
	for _, id := range candidates {
		desc := &bc6hModes[id]
		refine := settings.RefineIterations1P
		if desc.partitioned {
			refine = settings.RefineIterations2P
		}
		candOut := make([]byte, 16)
		err := bc6hEncodeMode(planes, desc, isSigned, refine, candOut)
		if bestErr < 0 || err < bestErr {
			bestErr = err
			best = candOut
		}
	}
	copy(out, best)
}

func bc6hEncodeMode(planes blockPlanes, desc *bc6hModeDesc, isSigned bool, refine uint32, out []byte) float64 {
	numSubsets := 1
	partition := 0
	if desc.partitioned {
		numSubsets = 2
	}

	bestErr := -1.0
	var bestPartition int
	var bestEP [2][2][3]int32
	var bestSel [16]int

	partitionCandidates := []int{0}
	if desc.partitioned {
		partitionCandidates = make([]int, 32)
		for i := range partitionCandidates {
			partitionCandidates[i] = i
		}
	}

	for _, p := range partitionCandidates {
		ep, sel, err := bc6hFitPartition(planes, desc, p, numSubsets, isSigned, refine)
		if bestErr < 0 || err < bestErr {
			bestErr = err
			bestPartition = p
			bestEP = ep
			bestSel = sel
		}
	}
	partition = bestPartition

	bc6hPack(desc, partition, bestEP, bestSel, isSigned, out)
	return bestErr
}

func bc6hFitPartition(planes blockPlanes, desc *bc6hModeDesc, partition, numSubsets int, isSigned bool, refine uint32) (ep [2][2][3]int32, sel [16]int, totalErr float64) {
	weights := bc6hWeights16[:]
	if desc.partitioned {
		weights = bc6hWeights8[:]
	}

	var subsetMask [2]uint16
	for texel := 0; texel < 16; texel++ {
		s := 0
		if desc.partitioned && bc6hPartitionTable2[partition][texel] == 1 {
			s = 1
		}
		subsetMask[s] |= 1 << uint(texel)
	}

	var rawEP [2][2][3]float64
	for s := 0; s < numSubsets; s++ {
		stats := computeStatsMasked(planes, subsetMask[s])
		cov := covarFromStats(stats)
		axis := blockPCAAxis(cov.cov)
		proj := projectOntoAxis(planes, cov.mean, axis)

		minI, maxI := -1, -1
		for texel := 0; texel < 16; texel++ {
			if subsetMask[s]&(1<<uint(texel)) == 0 {
				continue
			}
			if minI < 0 || proj[texel] < proj[minI] {
				minI = texel
			}
			if maxI < 0 || proj[texel] > proj[maxI] {
				maxI = texel
			}
		}
		if minI < 0 {
			minI, maxI = 0, 0
		}
		rawEP[s][0] = [3]float64{float64(planes.r[maxI]), float64(planes.g[maxI]), float64(planes.b[maxI])}
		rawEP[s][1] = [3]float64{float64(planes.r[minI]), float64(planes.g[minI]), float64(planes.b[minI])}
	}

	for iter := uint32(0); iter < refine; iter++ {
		var levels [2][16]int
		for s := 0; s < numSubsets; s++ {
			for c := 0; c < 3; c++ {
				var plane [16]float32
				for i := 0; i < 16; i++ {
					switch c {
					case 0:
						plane[i] = planes.r[i]
					case 1:
						plane[i] = planes.g[i]
					default:
						plane[i] = planes.b[i]
					}
				}
				lvls, _ := blockQuantChannel(plane, rawEP[s][0][c], rawEP[s][1][c], weights, subsetMask[s])
				if c == 0 {
					levels[s] = lvls
				}
			}
		}

		for s := 0; s < numSubsets; s++ {
			var w [16]float64
			for texel := 0; texel < 16; texel++ {
				if subsetMask[s]&(1<<uint(texel)) == 0 {
					continue
				}
				w[texel] = float64(weights[levels[s][texel]]) / 64.0
			}
			for c := 0; c < 3; c++ {
				var plane [16]float32
				for i := 0; i < 16; i++ {
					switch c {
					case 0:
						plane[i] = planes.r[i]
					case 1:
						plane[i] = planes.g[i]
					default:
						plane[i] = planes.b[i]
					}
				}
				e0, e1, ok := optEndpoints(plane, w, subsetMask[s])
				if ok {
					rawEP[s][0][c] = e0
					rawEP[s][1][c] = e1
				}
			}
		}
	}

	totalErr = 0
	for texel := 0; texel < 16; texel++ {
		s := 0
		if desc.partitioned && bc6hPartitionTable2[partition][texel] == 1 {
			s = 1
		}
		best, bestErr := 0, 1e18
		for lvl, w64 := range weights {
			wv := float64(w64) / 64.0
			var e float64
			for c := 0; c < 3; c++ {
				var x float64
				switch c {
				case 0:
					x = float64(planes.r[texel])
				case 1:
					x = float64(planes.g[texel])
				default:
					x = float64(planes.b[texel])
				}
				v := rawEP[s][0][c]*(1-wv) + rawEP[s][1][c]*wv
				d := v - x
				e += d * d
			}
			if e < bestErr {
				bestErr, best = e, lvl
			}
		}
		sel[texel] = best
		totalErr += bestErr
	}

	maxVal := float64(int32(1)<<uint(desc.epBits[0]) - 1)
	lo := 0.0
	if isSigned {
		lo = -maxVal
	}
	for s := 0; s < numSubsets; s++ {
		for e := 0; e < 2; e++ {
			for c := 0; c < 3; c++ {
				ep[s][e][c] = int32(clampF(rawEP[s][e][c], lo, maxVal))
			}
		}
	}
	return
}

// bc6hPack assembles the final bit layout for the chosen mode, partition,
// endpoints and selectors, mirroring decode_bc6h.go's field order exactly so
// the two stay byte-for-byte consistent (§9 mode-descriptor table).
func bc6hPack(desc *bc6hModeDesc, partition int, ep [2][2][3]int32, sel [16]int, isSigned bool, out []byte) {
	var w bitWriter
	w.writeBits(uint64(desc.pattern), 5)

	if desc.partitioned {
		w.writeBits(uint64(partition)&0x1F, 5)
	}

	for c := 0; c < 3; c++ {
		w.writeBits(uint64(ep[0][0][c])&mask64(uint(desc.epBits[c])), uint(desc.epBits[c]))
	}

	mod := int32(1) << uint(desc.epBits[0])
	writeDelta := func(abs, base int32, bits int) {
		d := abs
		if desc.transformed {
			d = abs - base
			if d < -(mod / 2) {
				d += mod
			}
			if d >= mod/2 {
				d -= mod
			}
		}
		w.writeBits(uint64(d)&mask64(uint(bits)), uint(bits))
	}

	if desc.partitioned {
		for c := 0; c < 3; c++ {
			writeDelta(ep[0][1][c], ep[0][0][c], desc.deltaBits[c])
		}
		for c := 0; c < 3; c++ {
			writeDelta(ep[1][0][c], ep[0][0][c], desc.deltaBits[c])
		}
		for c := 0; c < 3; c++ {
			writeDelta(ep[1][1][c], ep[0][0][c], desc.deltaBits[c])
		}
	} else {
		for c := 0; c < 3; c++ {
			writeDelta(ep[0][1][c], ep[0][0][c], desc.deltaBits[c])
		}
	}

	selBits := 4
	if desc.partitioned {
		selBits = 3
	}
	for texel := 0; texel < 16; texel++ {
		subset := 0
		if desc.partitioned && bc6hPartitionTable2[partition][texel] == 1 {
			subset = 1
		}
		isFixup := texel == 0 || (desc.partitioned && subset == 1 && texel == bc6hFixupIndex2[partition])
		bits := selBits
		if isFixup {
			bits--
		}
		w.writeBits(uint64(sel[texel]), uint(bits))
	}

	w.finish(out)
}

func mask64(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// bitWriter accumulates bits LSB-first into a 128-bit (two uint64) buffer,
// the mirror image of BitStream's reader.
type bitWriter struct {
	lo, hi uint64
	nbits  uint
}

func (w *bitWriter) writeBits(v uint64, n uint) {
	v &= mask64(n)
	if w.nbits < 64 {
		w.lo |= v << w.nbits
		if w.nbits+n > 64 {
			w.hi |= v >> (64 - w.nbits)
		}
	} else {
		w.hi |= v << (w.nbits - 64)
	}
	w.nbits += n
}

func (w *bitWriter) finish(out []byte) {
	for i := 0; i < 8; i++ {
		out[i] = byte(w.lo >> uint(8*i))
		out[8+i] = byte(w.hi >> uint(8*i))
	}
}
