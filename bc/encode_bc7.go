package bc

// BC7 CPU encoder (§4.3). Candidate modes are selected by BC7Settings.
// ModeSelection gates mode groups 0 (modes 0/2), 1 (modes 1/3/7), 2 (modes
// 4/5) and 3 (mode 6); modes 4, 5 and 7 are tried only for blocks with a
// texel whose alpha is below 255. SkipMode2 drops the mode-2 3-subset search;
// the FastSkipThreshold* fields bound how many of the 64 partitions are tried
// per mode.

// EncodeBC7Block encodes a 4x4 RGBA8 tile into a 16-byte BC7 block.
func EncodeBC7Block(pix []byte, pitch int, out []byte, settings BC7Settings) {
	bp := loadBlockInterleavedRGBA8(pix, pitch)
	if settings.Channels == 3 {
		for i := range bp.a {
			bp.a[i] = 255
		}
	}

	hasAlpha := false
	for i := 0; i < 16; i++ {
		if bp.a[i] != 255 {
			hasAlpha = true
			break
		}
	}

	type attempt struct {
		mode int
		err  float64
		out  []byte
	}
	var best *attempt

	tryMode := func(mode int) {
		desc := &bc7Modes[mode]
		if hasAlpha && desc.alphaBits == 0 {
			return
		}
		candOut := make([]byte, 16)
		err := bc7EncodeMode(bp, desc, settings, candOut)
		if best == nil || err < best.err {
			best = &attempt{mode: mode, err: err, out: candOut}
		}
	}

	if settings.ModeSelection[0] {
		tryMode(0)
		if !settings.SkipMode2 {
			tryMode(2)
		}
	}
	if settings.ModeSelection[1] {
		tryMode(1)
		tryMode(3)
		if hasAlpha {
			tryMode(7)
		}
	}
	if settings.ModeSelection[2] && hasAlpha {
		tryMode(4)
		tryMode(5)
	}
	if settings.ModeSelection[3] {
		tryMode(6)
	}
	if best == nil {
		tryMode(6)
	}
	copy(out, best.out)
}

func bc7EncodeMode(bp blockPlanes, desc *bc7ModeDesc, settings BC7Settings, out []byte) float64 {
	fastSkip := 64
	switch desc.mode {
	case 1:
		fastSkip = int(settings.FastSkipThresholdMode1)
	case 3:
		fastSkip = int(settings.FastSkipThresholdMode3)
	case 7:
		fastSkip = int(settings.FastSkipThresholdMode7)
	}
	if fastSkip <= 0 || fastSkip > 64 {
		fastSkip = 64
	}

	numPartitions := 1
	if desc.partitionBits > 0 {
		numPartitions = 1 << uint(desc.partitionBits)
		if numPartitions > fastSkip {
			numPartitions = fastSkip
		}
	}

	bestErr := -1.0
	var bestOut []byte

	rotations := []int{0}
	indexSels := []int{0}
	if desc.rotationBits > 0 {
		rotations = []int{0, 1, 2, 3}
	}
	if desc.hasIndexSel {
		indexSels = []int{0, 1}
	}

	for partition := 0; partition < numPartitions; partition++ {
		partTable := subsetAssignment(*desc, partition)
		for _, rot := range rotations {
			for _, isel := range indexSels {
				candOut := make([]byte, 16)
				err := bc7EncodeCandidate(bp, desc, partition, partTable, rot, isel, settings, candOut)
				if bestErr < 0 || err < bestErr {
					bestErr = err
					bestOut = candOut
				}
			}
		}
	}
	copy(out, bestOut)
	return bestErr
}

func bc7EncodeCandidate(bp blockPlanes, desc *bc7ModeDesc, partition int, partTable [16]uint8, rotation, indexSel int, settings BC7Settings, out []byte) float64 {
	rotated := bp
	if desc.rotationBits > 0 {
		for i := 0; i < 16; i++ {
			switch rotation {
			case 1:
				rotated.r[i], rotated.a[i] = bp.a[i], bp.r[i]
			case 2:
				rotated.g[i], rotated.a[i] = bp.a[i], bp.g[i]
			case 3:
				rotated.b[i], rotated.a[i] = bp.a[i], bp.b[i]
			}
		}
	}

	var subsetMask [3]uint16
	for texel := 0; texel < 16; texel++ {
		s := partTable[texel]
		subsetMask[s] |= 1 << uint(texel)
	}

	colorBits := desc.colorBits
	alphaBits := desc.alphaBits
	if desc.pBitPerPair || desc.pBitPerEndpoint {
		colorBits++
		if alphaBits > 0 {
			alphaBits++
		}
	}
	colorIdxBits := desc.indexBits[0]
	alphaIdxBits := desc.indexBits[1]
	if alphaIdxBits == 0 {
		alphaIdxBits = desc.indexBits[0]
	}
	if desc.hasIndexSel && indexSel == 1 {
		colorIdxBits, alphaIdxBits = alphaIdxBits, colorIdxBits
	}
	colorWeights := bc7WeightTable(colorIdxBits)
	alphaWeights := bc7WeightTable(alphaIdxBits)

	var colorEP [3][3][2]float64
	var alphaEP [3][2]float64
	refine := settings.RefineIterations[desc.mode]
	if refine == 0 {
		refine = 1
	}

	for s := 0; s < desc.subsets; s++ {
		stats := computeStatsMasked(rotated, subsetMask[s])
		cov := covarFromStats(stats)
		axis := blockPCAAxis(cov.cov)
		proj := projectOntoAxis(rotated, cov.mean, axis)

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
		colorEP[0][s][0], colorEP[1][s][0], colorEP[2][s][0] = float64(rotated.r[maxI]), float64(rotated.g[maxI]), float64(rotated.b[maxI])
		colorEP[0][s][1], colorEP[1][s][1], colorEP[2][s][1] = float64(rotated.r[minI]), float64(rotated.g[minI]), float64(rotated.b[minI])
		if alphaBits > 0 {
			alphaEP[s][0] = float64(rotated.a[maxI])
			alphaEP[s][1] = float64(rotated.a[minI])
		}
	}

	var colorIdx, alphaIdx [16]int
	for iter := uint32(0); iter < refine; iter++ {
		for s := 0; s < desc.subsets; s++ {
			var wR [16]float64
			for texel := 0; texel < 16; texel++ {
				if subsetMask[s]&(1<<uint(texel)) == 0 {
					continue
				}
				best, bestErr := 0, 1e18
				for lvl, w64 := range colorWeights {
					wv := float64(w64) / 64.0
					var e float64
					for c := 0; c < 3; c++ {
						v := colorEP[c][s][0]*(1-wv) + colorEP[c][s][1]*wv
						d := v - planeVal(rotated, c, texel)
						e += d * d
					}
					if e < bestErr {
						bestErr, best = e, lvl
					}
				}
				colorIdx[texel] = best
				wR[texel] = float64(colorWeights[best]) / 64.0
			}
			for c := 0; c < 3; c++ {
				e0, e1, ok := optEndpoints(planeByChannel(rotated, c), wR, subsetMask[s])
				if ok {
					colorEP[c][s][0], colorEP[c][s][1] = e0, e1
				}
			}
			if alphaBits > 0 {
				for texel := 0; texel < 16; texel++ {
					if subsetMask[s]&(1<<uint(texel)) == 0 {
						continue
					}
					best, bestErr := 0, 1e18
					for lvl, w64 := range alphaWeights {
						wv := float64(w64) / 64.0
						v := alphaEP[s][0]*(1-wv) + alphaEP[s][1]*wv
						d := v - float64(rotated.a[texel])
						e := d * d
						if e < bestErr {
							bestErr, best = e, lvl
						}
					}
					alphaIdx[texel] = best
				}
			}
		}
	}

	totalErr := 0.0
	for texel := 0; texel < 16; texel++ {
		s := int(partTable[texel])
		cw := float64(colorWeights[colorIdx[texel]]) / 64.0
		for c := 0; c < 3; c++ {
			v := colorEP[c][s][0]*(1-cw) + colorEP[c][s][1]*cw
			d := v - planeVal(rotated, c, texel)
			totalErr += d * d
		}
		if alphaBits > 0 {
			aw := float64(alphaWeights[alphaIdx[texel]]) / 64.0
			v := alphaEP[s][0]*(1-aw) + alphaEP[s][1]*aw
			d := v - float64(rotated.a[texel])
			totalErr += d * d
		}
	}

	bc7Pack(desc, partition, partTable, rotation, indexSel, colorEP, alphaEP, colorIdx, alphaIdx, out)
	return totalErr
}

func planeByChannel(bp blockPlanes, c int) [16]float32 {
	switch c {
	case 0:
		return bp.r
	case 1:
		return bp.g
	default:
		return bp.b
	}
}

func planeVal(bp blockPlanes, c, i int) float64 {
	switch c {
	case 0:
		return float64(bp.r[i])
	case 1:
		return float64(bp.g[i])
	default:
		return float64(bp.b[i])
	}
}

// bc7Pack assembles the final bit layout, mirroring decode_bc7.go's field
// order: unary mode prefix, partition/rotation/index-select bits,
// channel-major endpoints, P-bits, then index streams.
func bc7Pack(desc *bc7ModeDesc, partition int, partTable [16]uint8, rotation, indexSel int, colorEP [3][3][2]float64, alphaEP [3][2]float64, colorIdx, alphaIdx [16]int, out []byte) {
	var w bitWriter
	for i := 0; i < desc.mode; i++ {
		w.writeBits(0, 1)
	}
	w.writeBits(1, 1)

	if desc.partitionBits > 0 {
		w.writeBits(uint64(partition), uint(desc.partitionBits))
	} else if desc.rotationBits > 0 {
		w.writeBits(uint64(rotation), uint(desc.rotationBits))
		if desc.hasIndexSel {
			w.writeBits(uint64(indexSel), 1)
		}
	}

	quant := func(v float64, bits int) int {
		maxV := (1 << uint(bits)) - 1
		q := int(clampF(v/255*float64(maxV), 0, float64(maxV)))
		return q
	}

	colorBits := desc.colorBits
	var qColor [3][3][2]int
	for c := 0; c < 3; c++ {
		for s := 0; s < desc.subsets; s++ {
			for e := 0; e < 2; e++ {
				qColor[c][s][e] = quant(colorEP[c][s][e], colorBits)
			}
		}
	}
	hasAlpha := desc.alphaBits > 0
	var qAlpha [3][2]int
	if hasAlpha {
		for s := 0; s < desc.subsets; s++ {
			for e := 0; e < 2; e++ {
				qAlpha[s][e] = quant(alphaEP[s][e], desc.alphaBits)
			}
		}
	}

	for c := 0; c < 3; c++ {
		for s := 0; s < desc.subsets; s++ {
			for e := 0; e < 2; e++ {
				w.writeBits(uint64(qColor[c][s][e]), uint(colorBits))
			}
		}
	}
	if hasAlpha {
		for s := 0; s < desc.subsets; s++ {
			for e := 0; e < 2; e++ {
				w.writeBits(uint64(qAlpha[s][e]), uint(desc.alphaBits))
			}
		}
	}

	if desc.pBitPerPair {
		for s := 0; s < desc.subsets; s++ {
			p := qColor[0][s][0] & 1
			w.writeBits(uint64(p), 1)
		}
	} else if desc.pBitPerEndpoint {
		for s := 0; s < desc.subsets; s++ {
			for e := 0; e < 2; e++ {
				p := qColor[0][s][e] & 1
				w.writeBits(uint64(p), 1)
			}
		}
	}

	idx0Bits := desc.indexBits[0]
	idx1Bits := desc.indexBits[1]
	primary, secondary := colorIdx, alphaIdx
	if desc.hasIndexSel && indexSel == 1 {
		primary, secondary = alphaIdx, colorIdx
	}
	if idx1Bits == 0 {
		secondary = [16]int{}
	}

	writeIndexStream := func(bits int, idx [16]int) {
		seen := [3]bool{true}
		for texel := 0; texel < 16; texel++ {
			s := int(partTable[texel])
			isFixup := texel == 0
			if s != 0 && !seen[s] {
				isFixup = true
				seen[s] = true
			}
			b := bits
			if isFixup {
				b--
			}
			w.writeBits(uint64(idx[texel]), uint(b))
		}
	}
	writeIndexStream(idx0Bits, primary)
	if idx1Bits > 0 {
		writeIndexStream(idx1Bits, secondary)
	}

	w.finish(out)
}
