package rating

// Optimizer abstracts a bounded 1-D minimizer. This capability interface
// replaces "is a numeric library present" branching: core code
// branches only on whether the optimizer produced a usable value, never
// on whether some package is importable.
type Optimizer interface {
	// Minimize finds x in [lo,hi] minimizing f, returning (x, true) on
	// success or (0, false) if it cannot produce a value.
	Minimize(f func(float64) float64, lo, hi float64) (float64, bool)
}

// GoldenSectionOptimizer is the default Optimizer: a dependency-free
// golden-section search, adequate for the unimodal-ish negative
// log-likelihood surfaces C2 minimizes rho over.
type GoldenSectionOptimizer struct {
	MaxIterations int
	Tolerance     float64
}

// NewGoldenSectionOptimizer returns an optimizer with sane defaults.
func NewGoldenSectionOptimizer() GoldenSectionOptimizer {
	return GoldenSectionOptimizer{MaxIterations: 100, Tolerance: 1e-6}
}

const invPhi = 0.6180339887498949 // (sqrt(5)-1)/2

func (g GoldenSectionOptimizer) Minimize(f func(float64) float64, lo, hi float64) (float64, bool) {
	if hi <= lo {
		return lo, true
	}
	maxIter := g.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}
	tol := g.Tolerance
	if tol <= 0 {
		tol = 1e-6
	}

	a, b := lo, hi
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)

	for i := 0; i < maxIter && (b-a) > tol; i++ {
		if fc < fd {
			b = d
			d, fd = c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a = c
			c, fc = d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	return (a + b) / 2, true
}
