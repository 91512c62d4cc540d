package corpus

import (
	"testing"
	"time"

	"safecheck/pkg/core"

	"github.com/stretchr/testify/require"
)

var testSig = core.Signature{
	Input:  core.Descriptor{Name: "float64", Kind: core.KindFloat},
	Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, ok := c.Get("truncate", testSig)
	require.False(t, ok)

	require.NoError(t, c.Put("truncate", testSig, -3.5))
	inputs, ok := c.Get("truncate", testSig)
	require.True(t, ok)
	require.Equal(t, []any{-3.5}, inputs)
}

func TestPutDeduplicates(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Put("truncate", testSig, -3.5))
	require.NoError(t, c.Put("truncate", testSig, -3.5))
	require.NoError(t, c.Put("truncate", testSig, -7.0))

	inputs, ok := c.Get("truncate", testSig)
	require.True(t, ok)
	require.Len(t, inputs, 2)
}

func TestEntriesAreKeyedBySignature(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Put("truncate", testSig, -3.5))

	other := core.Signature{
		Input:  core.Descriptor{Name: "int", Kind: core.KindInteger},
		Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
	}
	_, ok := c.Get("truncate", other)
	require.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c, err := New(t.TempDir(), time.Nanosecond)
	require.NoError(t, err)

	require.NoError(t, c.Put("truncate", testSig, -3.5))
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("truncate", testSig)
	require.False(t, ok)
}

func TestCapBoundsStoredInputs(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	for i := 0; i < maxInputs+10; i++ {
		require.NoError(t, c.Put("truncate", testSig, float64(-i)))
	}

	inputs, ok := c.Get("truncate", testSig)
	require.True(t, ok)
	require.Len(t, inputs, maxInputs)
}
