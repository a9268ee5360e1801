package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		n     int
		want  []int64
	}{
		{"no remainder", 120000, 3, []int64{40000, 40000, 40000}},
		{"remainder to first entries", 100, 3, []int64{34, 33, 33}},
		{"single party", 99, 1, []int64{99}},
		{"zero total", 0, 4, []int64{0, 0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitEvenly(tc.total, tc.n))
		})
	}
}

func TestSplitEvenlyProperties(t *testing.T) {
	for _, total := range []int64{1, 7, 100, 9999, 120001, 777777} {
		for n := 1; n <= 9; n++ {
			shares := SplitEvenly(total, n)
			require.Len(t, shares, n)

			var sum, min, max int64
			min, max = shares[0], shares[0]
			for _, s := range shares {
				sum += s
				if s < min {
					min = s
				}
				if s > max {
					max = s
				}
			}
			require.Equal(t, total, sum, "total=%d n=%d", total, n)
			require.LessOrEqual(t, max-min, int64(1), "total=%d n=%d", total, n)
		}
	}
}

func TestSplitEvenlyEmpty(t *testing.T) {
	assert.Nil(t, SplitEvenly(100, 0))
}

func TestRescaleToTotalExactSum(t *testing.T) {
	// Four identical raw prices inflated from 140000 to 210000: every share
	// rounds to 52500 and the last one absorbs nothing.
	parts := []int64{35000, 35000, 35000, 35000}
	got := RescaleToTotal(parts, 210000)
	assert.Equal(t, []int64{52500, 52500, 52500, 52500}, got)
}

func TestRescaleToTotalLastAbsorbsRemainder(t *testing.T) {
	parts := []int64{100, 100, 100}
	got := RescaleToTotal(parts, 200)

	var sum int64
	for _, s := range got {
		sum += s
	}
	assert.Equal(t, int64(200), sum)
	assert.Equal(t, []int64{67, 67, 66}, got)
}

func TestRescaleToTotalZeroRawSplitsEvenly(t *testing.T) {
	parts := []int64{0, 0, 0}
	got := RescaleToTotal(parts, 100)

	var sum int64
	for _, s := range got {
		sum += s
	}
	assert.Equal(t, int64(100), sum)
	assert.Equal(t, []int64{33, 33, 34}, got)
}

func TestRescaleToTotalNoDrift(t *testing.T) {
	cases := [][]int64{
		{35000, 40000, 35000},
		{1, 2, 3, 4, 5},
		{9999, 1},
		{12345, 67890, 13579, 24680},
	}
	targets := []int64{1, 99, 1000, 210001, 999999}

	for _, parts := range cases {
		for _, target := range targets {
			got := RescaleToTotal(parts, target)
			var sum int64
			for _, s := range got {
				sum += s
			}
			require.Equal(t, target, sum, "parts=%v target=%d", parts, target)
		}
	}
}

func TestTeachingFloorTarget(t *testing.T) {
	// 4 people accrued 140000; 6 people would have paid 210000 on average.
	assert.Equal(t, int64(210000), TeachingFloorTarget(140000, 4, 6))
	assert.Equal(t, int64(0), TeachingFloorTarget(140000, 0, 6))
	// Rounds half away from zero: 100/3*4 = 133.33 -> 133.
	assert.Equal(t, int64(133), TeachingFloorTarget(100, 3, 4))
}
