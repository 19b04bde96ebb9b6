package sentence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orders(g *Graph) []int {
	out := make([]int, 0, g.LayerCount())
	for _, l := range g.Layers() {
		v, _ := l.OrderValue()
		out = append(out, v)
	}
	return out
}

func ids(g *Graph) []string {
	out := make([]string, 0, g.LayerCount())
	for _, l := range g.Layers() {
		out = append(out, l.ID)
	}
	return out
}

func TestInsertLayerAtIndexFront(t *testing.T) {
	g := New()
	l0 := &Layer{ID: "L0"}
	require.NoError(t, g.InsertLayerAtIndex(l0, 0))
	require.NoError(t, g.AddWord(l0.ID, &Word{ID: "W0", Value: "The"}))

	l1 := &Layer{ID: "L1"}
	require.NoError(t, g.InsertLayerAtIndex(l1, 0))

	assert.Equal(t, 1, *l0.Order)
	assert.Equal(t, 0, *l1.Order)
	assert.Equal(t, []string{"L1", "L0"}, ids(g))
	require.NoError(t, g.Validate())
}

func TestInsertLayerAtIndex(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   []string
	}{
		{"front", 0, []string{"N", "A", "B", "C"}},
		{"middle", 1, []string{"A", "N", "B", "C"}},
		{"end", 3, []string{"A", "B", "C", "N"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for i, id := range []string{"A", "B", "C"} {
				require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: id}, i))
			}
			require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: "N"}, tt.target))
			assert.Equal(t, tt.want, ids(g))
			assert.Equal(t, []int{0, 1, 2, 3}, orders(g))
		})
	}
}

func TestInsertLayerDiscardsStaleOrder(t *testing.T) {
	g := New()
	require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: "A"}, 0))
	stale := 7
	n := &Layer{ID: "N", Order: &stale}
	require.NoError(t, g.InsertLayerAtIndex(n, 1))
	assert.Equal(t, []int{0, 1}, orders(g))
}

func TestMoveLayerToIndex(t *testing.T) {
	tests := []struct {
		name   string
		move   string
		target int
		want   []string
	}{
		{"no-op", "B", 1, []string{"A", "B", "C", "D"}},
		{"left", "C", 0, []string{"C", "A", "B", "D"}},
		{"left by one", "D", 2, []string{"A", "B", "D", "C"}},
		{"right", "A", 2, []string{"B", "C", "A", "D"}},
		{"right to end", "B", 3, []string{"A", "C", "D", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for i, id := range []string{"A", "B", "C", "D"} {
				require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: id}, i))
			}
			require.NoError(t, g.MoveLayerToIndex(tt.move, tt.target))

			l, _ := g.Layer(tt.move)
			assert.Equal(t, tt.target, *l.Order)
			assert.Equal(t, tt.want, ids(g))
			assert.Equal(t, []int{0, 1, 2, 3}, orders(g))
		})
	}
}

func TestMoveLayerOutOfRange(t *testing.T) {
	g := New()
	for i, id := range []string{"A", "B", "C"} {
		require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: id}, i))
	}

	for _, target := range []int{-1, 3, 10} {
		assert.ErrorIs(t, g.MoveLayerToIndex("A", target), ErrOrderOutOfRange, "target %d", target)
	}
	assert.ErrorIs(t, g.InsertLayerAtIndex(&Layer{ID: "N"}, 4), ErrOrderOutOfRange)
	assert.ErrorIs(t, g.InsertLayerAtIndex(&Layer{ID: "N"}, -1), ErrOrderOutOfRange)
	assert.ErrorIs(t, g.MoveLayerToIndex("missing", 0), ErrUnknownLayer)

	assert.Equal(t, []string{"A", "B", "C"}, ids(g))
	assert.Equal(t, []int{0, 1, 2}, orders(g))
	_, ok := g.Layer("N")
	assert.False(t, ok)
}

func TestMoveUnplacedLayer(t *testing.T) {
	g := New()
	require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: "A"}, 0))
	require.NoError(t, g.InsertLayerAtIndex(&Layer{ID: "B"}, 1))
	require.NoError(t, g.AppendLayer(&Layer{ID: "U"}))
	assert.ErrorIs(t, g.Validate(), ErrOrderNotDense)

	require.NoError(t, g.MoveLayerToIndex("U", 1))
	assert.Equal(t, []string{"A", "U", "B"}, ids(g))
	require.NoError(t, g.Validate())
}

func TestNormalize(t *testing.T) {
	g := New()
	five, two := 5, 2
	require.NoError(t, g.AppendLayer(&Layer{ID: "late", Order: &five}))
	require.NoError(t, g.AppendLayer(&Layer{ID: "unplaced"}))
	require.NoError(t, g.AppendLayer(&Layer{ID: "early", Order: &two}))

	g.Normalize()

	assert.Equal(t, []string{"early", "late", "unplaced"}, ids(g))
	assert.Equal(t, []int{0, 1, 2}, orders(g))
}

// TestOrderDensity drives random inserts and moves and checks that orders
// remain a permutation of 0..N-1 matching collection order after each step.
func TestOrderDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := New()
	for step := 0; step < 500; step++ {
		n := g.LayerCount()
		if n == 0 || rng.Intn(3) == 0 {
			require.NoError(t, g.InsertLayerAtIndex(NewLayer(), rng.Intn(n+1)))
		} else {
			layers := g.Layers()
			l := layers[rng.Intn(n)]
			target := rng.Intn(n)
			require.NoError(t, g.MoveLayerToIndex(l.ID, target))
			assert.Equal(t, target, *l.Order)
		}
		require.NoError(t, g.Validate(), "step %d", step)
	}
}
