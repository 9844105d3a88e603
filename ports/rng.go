package ports

// RandomSource is the pseudo-random stream the simulator draws from.
// *math/rand.Rand satisfies it; seed one for deterministic runs.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64

	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Perm returns a uniform random permutation of [0, n)
	Perm(n int) []int
}
