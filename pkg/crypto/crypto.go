package crypto

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func GenerateRandomAlphabet(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[RandIntn(len(alphabet))]
	}
	return string(b)
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// Sample returns k distinct elements drawn uniformly from population without
// replacement. If k exceeds the population size, the whole population is
// returned in shuffled order. The input slice is not modified.
func Sample[T any](population []T, k int) []T {
	pool := make([]T, len(population))
	copy(pool, population)

	if k > len(pool) {
		k = len(pool)
	}

	result := make([]T, 0, k)
	for i := 0; i < k; i++ {
		j := RandIntn(len(pool))
		result = append(result, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}

	return result
}
