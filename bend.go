package klangfarb

// Breakpoint is the knee of a piecewise-linear phase warp. Phase X is moved
// to Y; the rest of the cycle is stretched linearly on either side.
type Breakpoint struct {
	X Phase
	Y Phase
}

const minBendX = 1e-6

// NewBreakpoint clamps x strictly inside (0, 1) and y into [0, 1].
func NewBreakpoint(x, y Phase) Breakpoint {
	return Breakpoint{
		X: clamp(x, minBendX, 1-minBendX),
		Y: clamp(y, 0, 1),
	}
}

// Bend warps p through bp. A breakpoint at X=0 or X=1 has no defined warp
// and returns p unchanged.
func Bend(p Phase, bp Breakpoint) Phase {
	if bp.X <= 0 || bp.X >= 1 {
		return p
	}
	if p < bp.X {
		return (bp.Y / bp.X) * p
	}
	return ((1-bp.Y)/(1-bp.X))*(p-bp.X) + bp.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
