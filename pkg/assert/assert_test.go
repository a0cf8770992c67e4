//go:build !release

package assert_test

import (
	"testing"

	"github.com/argus-labs/gridwars/pkg/assert"
	testifyassert "github.com/stretchr/testify/assert"
)

func TestThat(t *testing.T) {
	t.Parallel()

	testifyassert.NotPanics(t, func() { assert.That(true, "never") })
	testifyassert.PanicsWithValue(t, "invariant violated: cell 3 holds 2 pieces", func() {
		assert.That(false, "cell %d holds %d pieces", 3, 2)
	})
}
