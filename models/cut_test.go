package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/phi/errors"
)

func referencePartition() Partition {
	return MustPartition(
		NewPart([]int{0, 2}, []int{0}),
		NewPart(nil, []int{2}),
		NewPart([]int{3}, []int{3}),
	)
}

func pastCut() Cut   { return NewCut(Past, referencePartition()) }
func futureCut() Cut { return NewCut(Future, referencePartition()) }

func ones(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			m[i][j] = 1
		}
	}
	return m
}

func boolMatrix(rows [][]int) [][]bool {
	out := make([][]bool, len(rows))
	for i, row := range rows {
		out[i] = make([]bool, len(row))
		for j, v := range row {
			out[i][j] = v != 0
		}
	}
	return out
}

func TestCut_Indices(t *testing.T) {
	assert.Equal(t, []int{0, 2, 3}, pastCut().Indices())
	assert.Equal(t, []int{0, 2, 3}, futureCut().Indices())
}

func TestCut_ApplyCut(t *testing.T) {
	tests := []struct {
		name string
		cut  Cut
		want [][]int
	}{
		{
			name: "past",
			cut:  pastCut(),
			want: [][]int{
				{1, 1, 1, 0},
				{1, 1, 1, 1},
				{0, 1, 0, 0},
				{0, 1, 0, 1},
			},
		},
		{
			name: "future",
			cut:  futureCut(),
			want: [][]int{
				{1, 1, 0, 0},
				{1, 1, 1, 1},
				{1, 1, 0, 0},
				{0, 1, 0, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := ones(4)
			got, err := tt.cut.ApplyCut(cm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, ones(4), cm, "input matrix must not be mutated")
		})
	}
}

func TestCut_CutMatrix(t *testing.T) {
	got, err := pastCut().CutMatrix(4)
	require.NoError(t, err)
	assert.Equal(t, boolMatrix([][]int{
		{0, 0, 0, 1},
		{0, 0, 0, 0},
		{1, 0, 1, 1},
		{1, 0, 1, 0},
	}), got)

	got, err = futureCut().CutMatrix(4)
	require.NoError(t, err)
	assert.Equal(t, boolMatrix([][]int{
		{0, 0, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 1, 1},
		{1, 0, 1, 0},
	}), got)
}

func TestCut_CutMatrixMatchesApplyCut(t *testing.T) {
	for _, cut := range []Cut{pastCut(), futureCut()} {
		for _, n := range []int{4, 6} {
			mask, err := cut.CutMatrix(n)
			require.NoError(t, err)
			applied, err := cut.ApplyCut(ones(n))
			require.NoError(t, err)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					assert.Equal(t, mask[i][j], applied[i][j] == 0, "%s at (%d,%d)", cut, i, j)
				}
			}
		}
	}
}

func TestCut_MatrixTooSmall(t *testing.T) {
	_, err := pastCut().CutMatrix(3)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = pastCut().ApplyCut(ones(3))
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = pastCut().ApplyCut([][]int{{1, 1, 1, 1}, {1}, {1}, {1}})
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestCut_SplitsMechanism(t *testing.T) {
	cut := pastCut()
	assert.True(t, cut.SplitsMechanism([]int{0, 3}))
	assert.True(t, cut.SplitsMechanism([]int{2, 3}))
	assert.False(t, cut.SplitsMechanism([]int{0}))
	assert.False(t, cut.SplitsMechanism([]int{3}))
	assert.False(t, cut.SplitsMechanism(nil))
}

func TestCut_AllCutMechanisms(t *testing.T) {
	assert.Equal(t, [][]int{
		{2}, {0, 2}, {0, 3}, {2, 3}, {0, 2, 3},
	}, pastCut().AllCutMechanisms())
}

func TestCut_Equality(t *testing.T) {
	other := NewCut(Past, MustPartition(
		NewPart([]int{0, 2}, []int{0}),
		NewPart(nil, []int{2}),
		NewPart([]int{3}, []int{3}),
	))

	assert.True(t, pastCut().Equal(other))
	assert.Equal(t, pastCut().Hash(), other.Hash())
	assert.Equal(t, pastCut().Key(), other.Key())
	assert.NotEqual(t, pastCut().Hash(), pastCut().Partition().Hash())

	assert.False(t, pastCut().Equal(futureCut()))
	assert.NotEqual(t, pastCut().Hash(), futureCut().Hash())
}

func TestNullCut(t *testing.T) {
	null := NullCut([]int{2, 0, 1})
	assert.True(t, null.IsNull())
	assert.Equal(t, Bidirectional, null.Direction())
	assert.Equal(t, []int{0, 1, 2}, null.Indices())
	assert.Empty(t, null.AllCutMechanisms())
	assert.Equal(t, "NullCut(0,1,2)", null.String())

	cm := [][]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 0}}
	applied, err := null.ApplyCut(cm)
	require.NoError(t, err)
	assert.Equal(t, cm, applied)

	assert.True(t, null.Equal(NullCut([]int{0, 1, 2})))
	assert.False(t, null.Equal(NullCut([]int{0, 1})))
	assert.False(t, pastCut().IsNull())
}

func TestPowerset(t *testing.T) {
	assert.Equal(t, [][]int{{1}, {4}, {7}, {1, 4}, {1, 7}, {4, 7}, {1, 4, 7}}, Powerset([]int{1, 4, 7}))
	assert.Empty(t, Powerset(nil))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("PAST")
	require.NoError(t, err)
	assert.Equal(t, Past, d)

	d, err = ParseDirection(" f ")
	require.NoError(t, err)
	assert.Equal(t, Future, d)

	_, err = ParseDirection("sideways")
	assert.True(t, errors.IsInvalidRequestError(err))
}
