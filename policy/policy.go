// Package policy maps source resolution and encoder capability to a
// quality parameter.
package policy

// Resolution thresholds for the quality tiers.
const (
	uhdWidth  = 3840
	uhdHeight = 2160
	fhdWidth  = 1920
	fhdHeight = 1080
)

// AutoCRF picks a CRF-equivalent quality value for the given resolution.
//
// Hardware encoders produce slightly worse quality per bit, so the NVENC
// values sit lower than their software counterparts. The function is
// pure and total; an explicit user override bypasses it entirely.
//
//	>= 4K:    19 (nvenc) / 24 (x265)
//	>= 1080p: 21 (nvenc) / 26 (x265)
//	below:    23 (nvenc) / 28 (x265)
func AutoCRF(width, height int, nvenc bool) int {
	switch {
	case width >= uhdWidth || height >= uhdHeight:
		if nvenc {
			return 19
		}
		return 24
	case width >= fhdWidth || height >= fhdHeight:
		if nvenc {
			return 21
		}
		return 26
	default:
		if nvenc {
			return 23
		}
		return 28
	}
}
