package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuality_Bonus_MatchesTable(t *testing.T) {
	want := map[Quality]int{1: 10, 2: 30, 3: 60, 4: 100, 5: 150}
	for q, bonus := range want {
		assert.Equal(t, bonus, q.Bonus(), "quality %d", q)
	}
}

func TestQuality_Bonus_OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Quality(0).Bonus() })
	assert.Panics(t, func() { Quality(6).Bonus() })
}

func TestQualityVector_TotalBonus(t *testing.T) {
	assert.Equal(t, 300, vec(3, 3, 3, 3, 3).TotalBonus())
	assert.Equal(t, 160, vec(1, 5).TotalBonus())
	assert.Equal(t, 140, vec(1, 1, 1, 4).TotalBonus())
}

func TestQualityVector_Validate(t *testing.T) {
	tests := []struct {
		name    string
		levels  []int
		wantErr bool
	}{
		{"two items", []int{1, 5}, false},
		{"five items", []int{1, 2, 3, 4, 5}, false},
		{"one item", []int{3}, true},
		{"six items", []int{1, 1, 1, 1, 1, 1}, true},
		{"zero quality", []int{0, 3}, true},
		{"quality above max", []int{3, 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQualityVector(tt.levels)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQualities)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQualityVector_Clone_IsIndependent(t *testing.T) {
	v := vec(2, 3, 4)
	c := v.Clone()
	c[0] = 5
	assert.Equal(t, Quality(2), v[0])
}

func TestQualityVector_CountAndString(t *testing.T) {
	v, err := NewQualityVector([]int{5, 5, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Count(MaxQuality))
	assert.Equal(t, 1, v.Count(MinQuality))
	assert.Equal(t, "[5,5,1]", v.String())
	assert.Equal(t, []int{5, 5, 1}, v.Ints())
}
