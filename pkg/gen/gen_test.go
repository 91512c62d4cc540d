package gen

import (
	"math/rand"
	"testing"

	"safecheck/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestIntBounds(t *testing.T) {
	g := Int{Min: -5, Max: 5}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		v := g.Generate(r).(int)
		require.GreaterOrEqual(t, v, -5)
		require.LessOrEqual(t, v, 5)
	}
}

func TestFloatBounds(t *testing.T) {
	g := Float{Min: -2.5, Max: 2.5}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		v := g.Generate(r).(float64)
		require.GreaterOrEqual(t, v, -2.5)
		require.Less(t, v, 2.5)
	}
}

func TestStringBounds(t *testing.T) {
	g := String{MaxLen: 4}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := g.Generate(r).(string)
		require.LessOrEqual(t, len(v), 4)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	g := Int{}
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		require.Equal(t, g.Generate(a), g.Generate(b))
	}
}

func TestDefaultRegistry(t *testing.T) {
	kinds := map[core.Kind]bool{}
	for _, g := range Default() {
		kinds[g.Kind()] = true
	}
	require.True(t, kinds[core.KindInteger])
	require.True(t, kinds[core.KindFloat])
	require.False(t, kinds[core.KindString])
	require.False(t, kinds[core.KindBool])
	require.Len(t, All(), 4)
}
