package config

import (
	"testing"
	"time"

	"github.com/smallbiznis/seatcounter/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPricingFileBuildsRegistry(t *testing.T) {
	registry, err := DefaultPricingFile().BuildRegistry(time.UTC)
	require.NoError(t, err)

	weekday := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)

	res, err := registry.Resolve("A5", "A區", weekday)
	require.NoError(t, err)
	assert.Equal(t, "A區-Default", res.Plan.Name)
	assert.Equal(t, pricing.DayWeekday, res.Day)
	assert.NotEmpty(t, res.Rules.PerPersonTiers)

	res, err = registry.Resolve("森林包廂", "", weekday)
	require.NoError(t, err)
	assert.Equal(t, "森林/城市包廂", res.Plan.Name)
	assert.Equal(t, int64(60000), res.Rules.RoomHourly.PriceCentsPerHour)
	assert.Equal(t, 6, res.Rules.Teaching.MinPeople)

	res, err = registry.Resolve("B區包廂", "", weekday)
	require.NoError(t, err)
	assert.Equal(t, int64(80000), res.Rules.RoomHourly.PriceCentsPerHour)
	assert.Equal(t, 7, res.Rules.Teaching.MinPeople)
}

func TestBuildRegistryRejectsUnknownPlanReference(t *testing.T) {
	file := PricingFile{
		Plans: []PlanConfig{{Name: "base"}},
		Bindings: []BindingConfig{
			{Scope: "area", Area: "A區", Plan: "missing"},
		},
	}

	_, err := file.BuildRegistry(time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown plan")
}

func TestBuildRegistryRequiresAreaBinding(t *testing.T) {
	file := PricingFile{
		Plans: []PlanConfig{{Name: "base"}},
		Bindings: []BindingConfig{
			{Scope: "table", Table: "T1", Plan: "base"},
		},
	}

	_, err := file.BuildRegistry(time.UTC)
	require.Error(t, err)
}

func TestBuildRegistryRejectsInvalidScope(t *testing.T) {
	file := PricingFile{
		Plans: []PlanConfig{{Name: "base"}},
		Bindings: []BindingConfig{
			{Scope: "seat", Plan: "base"},
		},
	}

	_, err := file.BuildRegistry(time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scope")
}
