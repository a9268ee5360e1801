package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func weekdayRules() RulesPerDay {
	return RulesPerDay{
		PerPersonTiers: []PerPersonTier{
			{HoursFrom: 1, HoursTo: intPtr(2), PriceCentsPerPerson: 9000},
			{HoursFrom: 2, HoursTo: intPtr(3), PriceCentsPerPerson: 18000},
			{HoursFrom: 3, HoursTo: intPtr(4), PriceCentsPerPerson: 25000},
			{HoursFrom: 4, HoursTo: intPtr(5), PriceCentsPerPerson: 30000},
			{HoursFrom: 5, HoursTo: nil, PriceCentsPerPerson: 35000},
		},
		RoundUpToMinutes: 60,
		RoomHourly:       RoomHourlyRule{PriceCentsPerHour: 60000, RoundUpToMinutes: 60},
		Teaching: TeachingRule{
			MinPeople:                    6,
			BaseHours:                    3,
			BasePriceCentsPerPerson:      35000,
			ExtraUnitMinutes:             60,
			ExtraUnitPriceCentsPerPerson: 5000,
		},
	}
}

func TestComputePerPersonTier(t *testing.T) {
	rules := weekdayRules()

	tests := []struct {
		name      string
		minutes   int
		wantCents int64
		wantHours int
	}{
		{"one minute bills first hour", 1, 9000, 1},
		{"exactly one hour", 60, 9000, 1},
		{"61 minutes rounds into second hour", 61, 18000, 2},
		{"125 minutes rounds to 3 hours", 125, 25000, 3},
		{"five hours hits open-ended tier", 300, 35000, 5},
		{"way past the last tier", 720, 35000, 12},
		{"zero minutes clamps to one", 0, 9000, 1},
		{"negative minutes clamps to one", -30, 9000, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputePerPersonTier(tc.minutes, rules)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCents, got.PerPersonCents)
			assert.Equal(t, tc.wantHours, got.MatchedHours)
		})
	}
}

// A tier table with a gap: 125 minutes rounds to 3 hours, which matches
// neither the 2-3 tier nor the 5+ tier, so the calculator takes the fallback
// branch to the tier with the greatest HoursFrom.
func TestComputePerPersonTierGapFallsBackToCeilingTier(t *testing.T) {
	rules := RulesPerDay{
		PerPersonTiers: []PerPersonTier{
			{HoursFrom: 1, HoursTo: intPtr(2), PriceCentsPerPerson: 9000},
			{HoursFrom: 2, HoursTo: intPtr(3), PriceCentsPerPerson: 18000},
			{HoursFrom: 5, HoursTo: nil, PriceCentsPerPerson: 35000},
		},
		RoundUpToMinutes: 60,
	}

	got, err := ComputePerPersonTier(125, rules)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MatchedHours)
	assert.Equal(t, int64(35000), got.PerPersonCents)
}

func TestComputePerPersonTierNoTiers(t *testing.T) {
	_, err := ComputePerPersonTier(60, RulesPerDay{RoundUpToMinutes: 60})
	assert.ErrorIs(t, err, ErrNoTiers)
}

func TestComputePerPersonTierMonotonic(t *testing.T) {
	rules := weekdayRules()

	var prev int64
	for mins := 1; mins <= 12*60; mins += 7 {
		got, err := ComputePerPersonTier(mins, rules)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.PerPersonCents, prev,
			"longer stays must never cost less (minutes=%d)", mins)
		prev = got.PerPersonCents
	}
}

func TestComputeRoomHourlyRounding(t *testing.T) {
	rule := RoomHourlyRule{PriceCentsPerHour: 60000, RoundUpToMinutes: 60}

	at59 := ComputeRoomHourly(59, rule)
	at60 := ComputeRoomHourly(60, rule)
	at61 := ComputeRoomHourly(61, rule)

	assert.Equal(t, at60.TotalCents, at59.TotalCents)
	assert.Equal(t, 1, at60.BilledHours)
	assert.Greater(t, at61.TotalCents, at60.TotalCents)
	assert.Equal(t, 2, at61.BilledHours)
}

func TestComputeRoomHourlyClampsMinutes(t *testing.T) {
	rule := RoomHourlyRule{PriceCentsPerHour: 60000, RoundUpToMinutes: 60}

	got := ComputeRoomHourly(-5, rule)
	assert.Equal(t, int64(60000), got.TotalCents)
	assert.Equal(t, 1, got.BilledHours)
}

func TestComputeTeachingPerPerson(t *testing.T) {
	rule := TeachingRule{
		MinPeople:                    6,
		BaseHours:                    3,
		BasePriceCentsPerPerson:      35000,
		ExtraUnitMinutes:             60,
		ExtraUnitPriceCentsPerPerson: 5000,
	}

	assert.Equal(t, int64(35000), ComputeTeachingPerPerson(60, rule))
	assert.Equal(t, int64(35000), ComputeTeachingPerPerson(180, rule))
	assert.Equal(t, int64(40000), ComputeTeachingPerPerson(181, rule))
	assert.Equal(t, int64(40000), ComputeTeachingPerPerson(240, rule))
	assert.Equal(t, int64(45000), ComputeTeachingPerPerson(241, rule))
}

func TestComputeTeachingHeadcountFloor(t *testing.T) {
	rule := TeachingRule{
		MinPeople:               6,
		BaseHours:               3,
		BasePriceCentsPerPerson: 35000,
		ExtraUnitMinutes:        60,
	}

	below := ComputeTeaching(120, 4, rule)
	assert.Equal(t, 6, below.BilledPeople)
	assert.Equal(t, int64(6*35000), below.TotalCents)

	above := ComputeTeaching(120, 8, rule)
	assert.Equal(t, 8, above.BilledPeople)
	assert.Equal(t, int64(8*35000), above.TotalCents)
}
