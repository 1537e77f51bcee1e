package occupancy

import "image"

// Epsilon is the smallest combined ratio that is still normalized.
const Epsilon = 1e-6

// SampleRatio aggregates one alpha layer into an occupancy fraction by
// visiting every stride-th pixel of every stride-th row.
//
// In weighted mode the result is the mean alpha over the visited pixels,
// otherwise the share of visited pixels with non-zero alpha. A nil, empty or
// truncated buffer yields 0. The buffer is read in place.
func SampleRatio(buf *image.Alpha, stride int, weighted bool) float64 {
	if !readable(buf) {
		return 0
	}
	stride = clampStride(stride)
	w, h := buf.Rect.Dx(), buf.Rect.Dy()

	var sum, hits, count uint64
	for y := 0; y < h; y += stride {
		row := buf.Pix[y*buf.Stride : y*buf.Stride+w]
		for x := 0; x < w; x += stride {
			a := row[x]
			sum += uint64(a)
			if a > 0 {
				hits++
			}
			count++
		}
	}
	if count == 0 {
		return 0
	}
	if weighted {
		return float64(sum) / (255 * float64(count))
	}
	return float64(hits) / float64(count)
}

// Normalize converts raw ratios into display targets. With normalize set the
// two targets are rescaled to sum to one; when both channels are empty both
// targets are zero.
func Normalize(rawPlayer, rawEnemy float64, normalize bool) (targetPlayer, targetEnemy float64) {
	if !normalize {
		return rawPlayer, rawEnemy
	}
	sum := rawPlayer + rawEnemy
	if sum > Epsilon {
		return rawPlayer / sum, rawEnemy / sum
	}
	return 0, 0
}

// MoveTowards steps current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	diff := target - current
	if diff <= maxDelta && diff >= -maxDelta {
		return target
	}
	if diff > 0 {
		return current + maxDelta
	}
	return current - maxDelta
}

func readable(buf *image.Alpha) bool {
	if buf == nil {
		return false
	}
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	if w <= 0 || h <= 0 || buf.Stride < w {
		return false
	}
	return len(buf.Pix) >= (h-1)*buf.Stride+w
}

func clampStride(stride int) int {
	if stride < MinStride {
		return MinStride
	}
	if stride > MaxStride {
		return MaxStride
	}
	return stride
}
