package bc

import "math"

// This file implements §4.3.x shared primitives: per-block pixel
// de-interleaving into planes, covariance/PCA, and fixed-selector
// quantization, used by every CPU encoder in encode_bc1to5.go,
// encode_bc6h.go and encode_bc7.go.

// blockPlanes holds a 4x4 block's pixels de-interleaved into four 16-entry
// float32 planes (R, G, B, A), as produced by loadBlockInterleaved*.
type blockPlanes struct {
	r, g, b, a [16]float32
}

// loadBlockInterleavedRGBA8 de-interleaves a 4x4 RGBA8 tile (pitch bytes per
// row) into planes.
func loadBlockInterleavedRGBA8(pix []byte, pitch int) blockPlanes {
	var bp blockPlanes
	for texel := 0; texel < 16; texel++ {
		row, col := texel/4, texel%4
		off := row*pitch + col*4
		bp.r[texel] = float32(pix[off+0])
		bp.g[texel] = float32(pix[off+1])
		bp.b[texel] = float32(pix[off+2])
		bp.a[texel] = float32(pix[off+3])
	}
	return bp
}

// blockStats accumulates 15 floats under an optional mask: six second-moment
// terms, four cross-alpha terms, four sums, and a count (§4.3.x
// compute_stats_masked).
type blockStats struct {
	sumR, sumG, sumB, sumA float64
	sumRR, sumGG, sumBB    float64
	sumRG, sumRB, sumGB    float64
	sumRA, sumGA, sumBA, sumAA float64
	count                  float64
}

func computeStatsMasked(bp blockPlanes, mask uint16) blockStats {
	var s blockStats
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		r, g, b, a := float64(bp.r[i]), float64(bp.g[i]), float64(bp.b[i]), float64(bp.a[i])
		s.sumR += r
		s.sumG += g
		s.sumB += b
		s.sumA += a
		s.sumRR += r * r
		s.sumGG += g * g
		s.sumBB += b * b
		s.sumRG += r * g
		s.sumRB += r * b
		s.sumGB += g * b
		s.sumRA += r * a
		s.sumGA += g * a
		s.sumBA += b * a
		s.sumAA += a * a
		s.count++
	}
	return s
}

// covar3 is the 3x3 RGB covariance matrix and mean derived from blockStats.
type covar3 struct {
	mean    [3]float64
	cov     [3][3]float64
}

func covarFromStats(s blockStats) covar3 {
	var c covar3
	if s.count == 0 {
		return c
	}
	n := s.count
	c.mean = [3]float64{s.sumR / n, s.sumG / n, s.sumB / n}
	c.cov[0][0] = s.sumRR/n - c.mean[0]*c.mean[0]
	c.cov[1][1] = s.sumGG/n - c.mean[1]*c.mean[1]
	c.cov[2][2] = s.sumBB/n - c.mean[2]*c.mean[2]
	c.cov[0][1] = s.sumRG/n - c.mean[0]*c.mean[1]
	c.cov[1][0] = c.cov[0][1]
	c.cov[0][2] = s.sumRB/n - c.mean[0]*c.mean[2]
	c.cov[2][0] = c.cov[0][2]
	c.cov[1][2] = s.sumGB/n - c.mean[1]*c.mean[2]
	c.cov[2][1] = c.cov[1][2]
	return c
}

// blockPCAAxis computes the dominant eigenvector of a 3x3 covariance matrix
// via 8 power iterations with per-iteration renormalization (§4.3.x
// block_pca_axis).
func blockPCAAxis(cov [3][3]float64) [3]float64 {
	axis := [3]float64{1, 1, 1}
	for iter := 0; iter < 8; iter++ {
		var next [3]float64
		for i := 0; i < 3; i++ {
			next[i] = cov[i][0]*axis[0] + cov[i][1]*axis[1] + cov[i][2]*axis[2]
		}
		norm := math.Sqrt(next[0]*next[0] + next[1]*next[1] + next[2]*next[2])
		if norm < 1e-12 {
			return axis
		}
		axis = [3]float64{next[0] / norm, next[1] / norm, next[2] / norm}
	}
	return axis
}

// blockPCABoundSplit is the pruning bound used to discard unpromising
// partitions before a full segmentation: sqrt of summed residual variances
// times 256 (§4.3.x block_pca_bound_split).
func blockPCABoundSplit(cov [3][3]float64) float64 {
	trace := cov[0][0] + cov[1][1] + cov[2][2]
	axis := blockPCAAxis(cov)
	var lambda float64 // variance along the principal axis
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lambda += axis[i] * cov[i][j] * axis[j]
		}
	}
	residual := trace - lambda
	if residual < 0 {
		residual = 0
	}
	return math.Sqrt(residual) * 256
}

// projectOntoAxis projects each texel in bp onto axis relative to mean,
// returning the scalar projections.
func projectOntoAxis(bp blockPlanes, mean, axis [3]float64) [16]float64 {
	var proj [16]float64
	for i := 0; i < 16; i++ {
		dr := float64(bp.r[i]) - mean[0]
		dg := float64(bp.g[i]) - mean[1]
		db := float64(bp.b[i]) - mean[2]
		proj[i] = dr*axis[0] + dg*axis[1] + db*axis[2]
	}
	return proj
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// optEndpoints solves the 2x2 least-squares system for new endpoints given
// fixed quantized selector weights w[i] in [0,1] and a texel mask (§4.3.x
// opt_endpoints). Returns (e0, e1) for a single channel plane.
func optEndpoints(plane [16]float32, weights [16]float64, mask uint16) (e0, e1 float64, ok bool) {
	// Normal equations for x_i = (1-w_i)*e0 + w_i*e1.
	var a00v, a01, a11, b0, b1 float64
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		w := weights[i]
		x := float64(plane[i])
		a00v += (1 - w) * (1 - w)
		a01 += (1 - w) * w
		a11 += w * w
		b0 += (1 - w) * x
		b1 += w * x
	}
	det := a00v*a11 - a01*a01
	if math.Abs(det) < 1e-9 {
		return 0, 0, false
	}
	e0 = (b0*a11 - b1*a01) / det
	e1 = (a00v*b1 - a01*b0) / det
	return e0, e1, true
}

// blockQuant quantizes every texel of plane against fixed endpoints using
// the provided weight table (values 0..64 over [0,numLevels)), returning the
// per-texel level index and total squared error (§4.3.x block_quant,
// single-channel slice; callers sum per-channel error for RGB/RGBA blocks).
func blockQuantChannel(plane [16]float32, e0, e1 float64, weights []int, mask uint16) (levels [16]int, errSum float64) {
	n := len(weights)
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		x := float64(plane[i])
		best := 0
		bestErr := math.MaxFloat64
		for lvl := 0; lvl < n; lvl++ {
			w := float64(weights[lvl]) / 64.0
			v := e0*(1-w) + e1*w
			d := v - x
			e := d * d
			if e < bestErr {
				bestErr = e
				best = lvl
			}
		}
		levels[i] = best
		errSum += bestErr
	}
	return
}

// partialSortIndices returns the indices of the k smallest values in score,
// in ascending order, using a stable O(k*n) selection (§4.3.x
// partial_sort_list). Reproducible across runs given the same input: ties
// keep the lower index. The CPU encoders do not call it.
func partialSortIndices(score []float64, k int) []int {
	n := len(score)
	if k > n {
		k = n
	}
	used := make([]bool, n)
	out := make([]int, 0, k)
	for iter := 0; iter < k; iter++ {
		best := -1
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			if best < 0 || score[i] < score[best] {
				best = i
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		out = append(out, best)
	}
	return out
}
