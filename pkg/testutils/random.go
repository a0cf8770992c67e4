// Package testutils holds helpers shared by the model-based and simulation tests.
package testutils

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"testing"
	"time"
)

var Seed uint64 //nolint:gochecknoglobals // intentionally global for test reproducibility

func init() { //nolint:gochecknoinits // intentionally using init to set seed
	Seed = uint64(time.Now().UnixNano()) //nolint:gosec // it's ok
	if envSeed := os.Getenv("TEST_SEED"); envSeed != "" {
		parsed, err := strconv.ParseUint(envSeed, 0, 64)
		if err == nil { // Only set using the env if it's valid
			Seed = parsed
		}
	}
	fmt.Printf("to reproduce: TEST_SEED=0x%x\n", Seed) //nolint:forbidigo // just for testing
}

// NewRand returns a PCG source seeded with Seed. Every test gets its own stream so parallel tests
// stay reproducible.
func NewRand(t *testing.T) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewPCG(Seed, Seed)) //nolint:gosec // weak RNG is fine for tests
}

// OpWeights maps an operation name to its relative selection weight.
type OpWeights map[string]uint64

// RandOpWeights assigns every operation a random weight in [1, 100].
func RandOpWeights(r *rand.Rand, ops []string) OpWeights {
	weights := make(OpWeights, len(ops))
	for _, op := range ops {
		weights[op] = r.Uint64N(100) + 1
	}
	return weights
}

// RandWeightedOp picks an operation according to its weight. Panics if every weight is zero.
func RandWeightedOp(r *rand.Rand, weights OpWeights) string {
	// Map iteration order is random, sort so the same seed picks the same op.
	ops := make([]string, 0, len(weights))
	var total uint64
	for op, w := range weights {
		ops = append(ops, op)
		total += w
	}
	slices.Sort(ops)

	pick := r.Uint64N(total)
	for _, op := range ops {
		w := weights[op]
		if pick < w {
			return op
		}
		pick -= w
	}
	panic("unreachable")
}

// RandElem returns a random element of a non-empty slice.
func RandElem[T any](r *rand.Rand, s []T) T {
	return s[r.IntN(len(s))]
}
