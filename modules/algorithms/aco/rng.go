package aco

// defaultSeed is used when Config.Seed is 0, so unseeded runs stay reproducible.
const defaultSeed int64 = 1

func effectiveSeed(seed int64) int64 {
	if seed == 0 {
		return defaultSeed
	}

	return seed
}

// deriveSeed mixes the colony seed with a stream id (one per ant per
// iteration) using the SplitMix64 finalizer, giving each ant an
// independent stream no matter which goroutine builds its tour.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}
