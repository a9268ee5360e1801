package pricing

import "errors"

// DayType selects which rule set of a plan applies.
type DayType string

const (
	DayWeekday DayType = "weekday"
	DayHoliday DayType = "holiday"
)

// PerPersonTier maps an hour range to a per-person price. HoursFrom is
// inclusive, HoursTo exclusive; a nil HoursTo means the tier is unbounded.
// Tiers are expected to be ordered by HoursFrom and non-overlapping; that is
// a configuration invariant, not something the engine enforces.
type PerPersonTier struct {
	HoursFrom           int    `mapstructure:"hours_from" json:"hours_from"`
	HoursTo             *int   `mapstructure:"hours_to" json:"hours_to,omitempty"`
	PriceCentsPerPerson int64  `mapstructure:"price_cents_per_person" json:"price_cents_per_person"`
}

// RoomHourlyRule bills a whole room by the hour.
type RoomHourlyRule struct {
	PriceCentsPerHour int64 `mapstructure:"price_cents_per_hour" json:"price_cents_per_hour"`
	RoundUpToMinutes  int   `mapstructure:"round_up_to_minutes" json:"round_up_to_minutes"`
}

// TeachingRule bills per person with a base block of hours, extra time in
// fixed units, and a minimum-headcount floor.
type TeachingRule struct {
	MinPeople                    int   `mapstructure:"min_people" json:"min_people"`
	BaseHours                    int   `mapstructure:"base_hours" json:"base_hours"`
	BasePriceCentsPerPerson      int64 `mapstructure:"base_price_cents_per_person" json:"base_price_cents_per_person"`
	ExtraUnitMinutes             int   `mapstructure:"extra_unit_minutes" json:"extra_unit_minutes"`
	ExtraUnitPriceCentsPerPerson int64 `mapstructure:"extra_unit_price_cents_per_person" json:"extra_unit_price_cents_per_person"`
}

// RulesPerDay bundles the three billing modes for one day type.
type RulesPerDay struct {
	PerPersonTiers   []PerPersonTier `mapstructure:"per_person_tiers" json:"per_person_tiers"`
	RoundUpToMinutes int             `mapstructure:"round_up_to_minutes" json:"round_up_to_minutes"`
	RoomHourly       RoomHourlyRule  `mapstructure:"room_hourly" json:"room_hourly"`
	Teaching         TeachingRule    `mapstructure:"teaching" json:"teaching"`
}

// Plan is a named pricing plan. Immutable once registered.
type Plan struct {
	Name  string
	Rules map[DayType]RulesPerDay
}

// BindingScope says whether a binding matches on table name or on area.
type BindingScope string

const (
	ScopeTable BindingScope = "table"
	ScopeArea  BindingScope = "area"
)

// Binding associates a table name or an area with a plan. On conflict the
// highest priority wins; ties go to the earliest registered binding.
type Binding struct {
	Scope     BindingScope
	TableName string
	Area      string
	Plan      *Plan
	Priority  int
}

var (
	// ErrNoTiers is returned when a per-person rule set has no tiers at all.
	ErrNoTiers = errors.New("no_tiers_configured")
	// ErrNoBinding is returned when no binding resolves to any plan.
	ErrNoBinding = errors.New("no_plan_binding")
)
