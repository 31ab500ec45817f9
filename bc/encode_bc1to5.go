package bc

// BC1-BC5 CPU encoders (§4.3). The BC1 color block finds a PCA axis for the
// color plane, takes its endpoints from the projection extrema and picks the
// nearest palette entry per texel; the endpoints are not refined by least
// squares afterwards. The smooth-alpha codec shared by BC3/BC4/BC5 takes the
// channel's minimum and maximum as endpoints, without a PCA step or
// refinement.

// EncodeBC1Block encodes a 4x4 RGBA8 tile into an 8-byte BC1 block.
// alphaThreshold selects punch-through mode: texels with alpha below it are
// treated as transparent and use the 3-color-plus-transparent (BC1A)
// palette branch.
func EncodeBC1Block(pix []byte, pitch int, out []byte, alphaThreshold uint8) {
	bp := loadBlockInterleavedRGBA8(pix, pitch)

	transparentMask := uint16(0)
	hasTransparent := false
	for i := 0; i < 16; i++ {
		if bp.a[i] < float32(alphaThreshold) {
			transparentMask |= 1 << uint(i)
			hasTransparent = true
		}
	}

	stats := computeStatsMasked(bp, 0xFFFF&^transparentMask)
	cov := covarFromStats(stats)
	axis := blockPCAAxis(cov.cov)
	proj := projectOntoAxis(bp, cov.mean, axis)

	minI, maxI := 0, 0
	for i := 1; i < 16; i++ {
		if transparentMask&(1<<uint(i)) != 0 {
			continue
		}
		if proj[i] < proj[minI] {
			minI = i
		}
		if proj[i] > proj[maxI] {
			maxI = i
		}
	}

	c0 := [3]float64{float64(bp.r[maxI]), float64(bp.g[maxI]), float64(bp.b[maxI])}
	c1 := [3]float64{float64(bp.r[minI]), float64(bp.g[minI]), float64(bp.b[minI])}

	q0 := quantize565(c0)
	q1 := quantize565(c1)

	// Fix degenerate blocks (all one color) so the BC1 4-color branch is
	// used rather than accidentally landing on the 3-color (punch-through)
	// interpretation.
	if !hasTransparent && q0 == q1 {
		if q0 < 0xFFFF {
			q0++
		} else {
			q0--
		}
	}
	// The decoder picks the palette from endpoint order: c0 > c1 is the
	// opaque 4-color palette, c0 <= c1 the BC1A one.
	if (hasTransparent && q0 > q1) || (!hasTransparent && q0 < q1) {
		q0, q1 = q1, q0
	}

	var selectors [16]int
	if hasTransparent || q0 <= q1 {
		selectors = bc1SelectThreeColor(bp, q0, q1, transparentMask)
	} else {
		selectors = bc1SelectFourColor(bp, q0, q1)
	}

	out[0] = byte(q0)
	out[1] = byte(q0 >> 8)
	out[2] = byte(q1)
	out[3] = byte(q1 >> 8)
	packSelectors2Bit(selectors, out[4:8])
}

func quantize565(c [3]float64) uint16 {
	r := uint16(clampF(c[0]/255*31, 0, 31))
	g := uint16(clampF(c[1]/255*63, 0, 63))
	b := uint16(clampF(c[2]/255*31, 0, 31))
	return r<<11 | g<<5 | b
}

func bc1SelectFourColor(bp blockPlanes, q0, q1 uint16) [16]int {
	r0, g0, b0 := expand565(q0)
	r1, g1, b1 := expand565(q1)
	var palette [4][3]float64
	palette[0] = [3]float64{float64(r0), float64(g0), float64(b0)}
	palette[1] = [3]float64{float64(r1), float64(g1), float64(b1)}
	c := rgbInterpOpaque(r0, r1, g0, g1, b0, b1, 2, 1)
	palette[2] = [3]float64{float64(c[0]), float64(c[1]), float64(c[2])}
	c = rgbInterpOpaque(r0, r1, g0, g1, b0, b1, 1, 2)
	palette[3] = [3]float64{float64(c[0]), float64(c[1]), float64(c[2])}

	var sel [16]int
	for i := 0; i < 16; i++ {
		best, bestErr := 0, 1e18
		px := [3]float64{float64(bp.r[i]), float64(bp.g[i]), float64(bp.b[i])}
		for k, p := range palette {
			dr, dg, db := p[0]-px[0], p[1]-px[1], p[2]-px[2]
			e := dr*dr + dg*dg + db*db
			if e < bestErr {
				bestErr, best = e, k
			}
		}
		sel[i] = best
	}
	return sel
}

func bc1SelectThreeColor(bp blockPlanes, q0, q1 uint16, transparentMask uint16) [16]int {
	r0, g0, b0 := expand565(q0)
	r1, g1, b1 := expand565(q1)
	var palette [3][3]float64
	palette[0] = [3]float64{float64(r0), float64(g0), float64(b0)}
	palette[1] = [3]float64{float64(r1), float64(g1), float64(b1)}
	c := rgbInterpHalf(r0, r1, g0, g1, b0, b1)
	palette[2] = [3]float64{float64(c[0]), float64(c[1]), float64(c[2])}

	var sel [16]int
	for i := 0; i < 16; i++ {
		if transparentMask&(1<<uint(i)) != 0 {
			sel[i] = 3
			continue
		}
		best, bestErr := 0, 1e18
		px := [3]float64{float64(bp.r[i]), float64(bp.g[i]), float64(bp.b[i])}
		for k, p := range palette {
			dr, dg, db := p[0]-px[0], p[1]-px[1], p[2]-px[2]
			e := dr*dr + dg*dg + db*db
			if e < bestErr {
				bestErr, best = e, k
			}
		}
		sel[i] = best
	}
	return sel
}

func packSelectors2Bit(sel [16]int, out []byte) {
	for i := 0; i < 4; i++ {
		var b byte
		for j := 3; j >= 0; j-- {
			b = b<<2 | byte(sel[i*4+j]&3)
		}
		out[i] = b
	}
}

// EncodeBC2Block encodes a 4x4 RGBA8 tile into a 16-byte BC2 block: sharp
// 4-bit alpha followed by an opaque-mode BC1 color block.
func EncodeBC2Block(pix []byte, pitch int, out []byte) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			a := pix[row*pitch+col*4+3]
			nib := uint16(a) >> 4
			bitOff := uint((row*4 + col) * 4)
			byteIdx := bitOff / 8
			if bitOff%8 == 0 {
				out[byteIdx] = byte(nib)
			} else {
				out[byteIdx] |= byte(nib) << 4
			}
		}
	}
	EncodeBC1Block(pix, pitch, out[8:16], 0)
}

// EncodeBC3Block encodes a 4x4 RGBA8 tile into a 16-byte BC3 block: smooth
// 8-level alpha (two endpoints) followed by an opaque-mode BC1 color block.
func EncodeBC3Block(pix []byte, pitch int, out []byte) {
	var alpha [16]float32
	for i := 0; i < 16; i++ {
		row, col := i/4, i%4
		alpha[i] = float32(pix[row*pitch+col*4+3])
	}
	encodeSmoothAlpha(alpha, out[0:8])
	EncodeBC1Block(pix, pitch, out[8:16], 0)
}

// EncodeBC4Block encodes a single-channel (red) 4x4 tile into an 8-byte BC4
// block. pix is RGBA8-interleaved; only the red channel is read.
func EncodeBC4Block(pix []byte, pitch int, out []byte) {
	var ch [16]float32
	for i := 0; i < 16; i++ {
		row, col := i/4, i%4
		ch[i] = float32(pix[row*pitch+col*4])
	}
	encodeSmoothAlpha(ch, out)
}

// EncodeBC5Block encodes a dual-channel (red, green) 4x4 tile into a 16-byte
// BC5 block: two independent smooth-alpha-style blocks.
func EncodeBC5Block(pix []byte, pitch int, out []byte) {
	var r, g [16]float32
	for i := 0; i < 16; i++ {
		row, col := i/4, i%4
		off := row*pitch + col*4
		r[i] = float32(pix[off])
		g[i] = float32(pix[off+1])
	}
	encodeSmoothAlpha(r, out[0:8])
	encodeSmoothAlpha(g, out[8:16])
}

// encodeSmoothAlpha packs one 8-byte smooth-alpha sub-block (shared by
// BC3/BC4/BC5's channel codec): 2 endpoint bytes + 16 3-bit selectors.
func encodeSmoothAlpha(ch [16]float32, out []byte) {
	lo, hi := ch[0], ch[0]
	for i := 1; i < 16; i++ {
		if ch[i] < lo {
			lo = ch[i]
		}
		if ch[i] > hi {
			hi = ch[i]
		}
	}
	a0 := clamp255(float64(hi))
	a1 := clamp255(float64(lo))
	if a0 == a1 {
		if a0 < 255 {
			a0++
		} else {
			a1--
		}
	}

	weights := smoothAlphaWeights(a0, a1)
	var sel [16]int
	for i := 0; i < 16; i++ {
		best, bestErr := 0, 1e18
		for k, w := range weights {
			d := float64(w) - float64(ch[i])
			e := d * d
			if e < bestErr {
				bestErr, best = e, k
			}
		}
		sel[i] = best
	}

	out[0] = a0
	out[1] = a1
	packSelectors3Bit(sel, out[2:8])
}

func smoothAlphaWeights(a0, a1 uint8) [8]int {
	var w [8]int
	w[0] = int(a0)
	w[1] = int(a1)
	if a0 > a1 {
		for i := 0; i < 6; i++ {
			w[2+i] = (int(a0)*(6-i) + int(a1)*(i+1)) / 7
		}
	} else {
		for i := 0; i < 4; i++ {
			w[2+i] = (int(a0)*(4-i) + int(a1)*(i+1)) / 5
		}
		w[6] = 0
		w[7] = 255
	}
	return w
}

func packSelectors3Bit(sel [16]int, out []byte) {
	var bits uint64
	var nbits uint
	byteIdx := 0
	for i := 0; i < 16; i++ {
		bits |= uint64(sel[i]&7) << nbits
		nbits += 3
		for nbits >= 8 {
			out[byteIdx] = byte(bits)
			bits >>= 8
			nbits -= 8
			byteIdx++
		}
	}
	if nbits > 0 && byteIdx < len(out) {
		out[byteIdx] = byte(bits)
	}
}
