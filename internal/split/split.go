package split

import (
	"math"
	"math/rand"
)

// Sizes returns the train and test set sizes for n samples and a test ratio
// in [0, 1]. The test size is rounded to the nearest integer.
func Sizes(n int, testRatio float64) (trainN, testN int) {
	testN = int(math.Round(testRatio * float64(n)))
	if testN > n {
		testN = n
	}
	return n - testN, testN
}

// Partition splits the index range [0, n) into disjoint train and test
// slices. With random set, the order comes from a PRNG seeded with seed, so
// the same inputs always yield the same partition; otherwise the test set is
// taken from the tail in sequential order.
func Partition(n int, testRatio float64, random bool, seed int64) (train, test []int) {
	if n <= 0 {
		return nil, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if random {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(n, func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
	}

	trainN, _ := Sizes(n, testRatio)
	return idx[:trainN], idx[trainN:]
}
