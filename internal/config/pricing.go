package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/seatcounter/internal/pricing"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// PricingFile is the on-disk shape of the pricing configuration. Plans and
// bindings are process-wide static data: they are loaded once at startup and
// never mutated at runtime.
type PricingFile struct {
	Holidays []string        `mapstructure:"holidays"`
	Plans    []PlanConfig    `mapstructure:"plans"`
	Bindings []BindingConfig `mapstructure:"bindings"`
}

type PlanConfig struct {
	Name    string              `mapstructure:"name"`
	Weekday pricing.RulesPerDay `mapstructure:"weekday"`
	Holiday pricing.RulesPerDay `mapstructure:"holiday"`
}

type BindingConfig struct {
	Scope    string `mapstructure:"scope"` // "table" or "area"
	Table    string `mapstructure:"table"`
	Area     string `mapstructure:"area"`
	Plan     string `mapstructure:"plan"`
	Priority int    `mapstructure:"priority"`
}

// LoadPricingFile reads pricing.yml via viper, falling back to the built-in
// default plan set when no file exists. The file is watched so that edits are
// at least visible in the logs, but a changed file never takes effect before
// a restart.
func LoadPricingFile(cfg Config, log *zap.Logger) (PricingFile, error) {
	v := viper.New()

	if cfg.PricingConfigPath != "" {
		v.SetConfigFile(cfg.PricingConfigPath)
	} else {
		v.SetConfigName("pricing")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/seatcounter")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info("no pricing config file found, using built-in defaults")
			return DefaultPricingFile(), nil
		}
		return PricingFile{}, fmt.Errorf("read pricing config: %w", err)
	}

	var file PricingFile
	if err := v.Unmarshal(&file); err != nil {
		return PricingFile{}, fmt.Errorf("parse pricing config: %w", err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Warn("pricing config changed on disk; plans are immutable at runtime, restart to apply",
			zap.String("file", e.Name),
		)
	})

	log.Info("pricing config loaded",
		zap.String("file", v.ConfigFileUsed()),
		zap.Int("plans", len(file.Plans)),
		zap.Int("bindings", len(file.Bindings)),
	)
	return file, nil
}

// BuildRegistry validates the file and constructs the immutable plan
// registry used by the billing engine.
func (f PricingFile) BuildRegistry(loc *time.Location) (*pricing.Registry, error) {
	plans := make(map[string]*pricing.Plan, len(f.Plans))
	for _, pc := range f.Plans {
		name := strings.TrimSpace(pc.Name)
		if name == "" {
			return nil, fmt.Errorf("pricing config: plan with empty name")
		}
		if _, exists := plans[name]; exists {
			return nil, fmt.Errorf("pricing config: duplicate plan %q", name)
		}
		plans[name] = &pricing.Plan{
			Name: name,
			Rules: map[pricing.DayType]pricing.RulesPerDay{
				pricing.DayWeekday: pc.Weekday,
				pricing.DayHoliday: pc.Holiday,
			},
		}
	}

	bindings := make([]pricing.Binding, 0, len(f.Bindings))
	hasArea := false
	for _, bc := range f.Bindings {
		plan, ok := plans[bc.Plan]
		if !ok {
			return nil, fmt.Errorf("pricing config: binding references unknown plan %q", bc.Plan)
		}
		switch bc.Scope {
		case "table":
			bindings = append(bindings, pricing.Binding{
				Scope:     pricing.ScopeTable,
				TableName: bc.Table,
				Plan:      plan,
				Priority:  bc.Priority,
			})
		case "area":
			hasArea = true
			bindings = append(bindings, pricing.Binding{
				Scope:    pricing.ScopeArea,
				Area:     bc.Area,
				Plan:     plan,
				Priority: bc.Priority,
			})
		default:
			return nil, fmt.Errorf("pricing config: binding has invalid scope %q", bc.Scope)
		}
	}
	if !hasArea {
		return nil, fmt.Errorf("pricing config: at least one area-scoped binding is required as the default plan")
	}

	return pricing.NewRegistry(pricing.NewCalendar(loc, f.Holidays), bindings), nil
}

// DefaultPricingFile is the built-in plan set for the venue: tiered open
// seating in area A區, the forest/city rooms at 600/h and the B區 room at
// 800/h, all with the teaching variant available.
func DefaultPricingFile() PricingFile {
	teaching := pricing.TeachingRule{
		MinPeople:                    6,
		BaseHours:                    3,
		BasePriceCentsPerPerson:      35000,
		ExtraUnitMinutes:             60,
		ExtraUnitPriceCentsPerPerson: 5000,
	}
	roomHourly := pricing.RoomHourlyRule{PriceCentsPerHour: 60000, RoundUpToMinutes: 60}

	openWeekday := pricing.RulesPerDay{
		PerPersonTiers: []pricing.PerPersonTier{
			{HoursFrom: 1, HoursTo: intPtr(2), PriceCentsPerPerson: 9000},
			{HoursFrom: 2, HoursTo: intPtr(3), PriceCentsPerPerson: 18000},
			{HoursFrom: 3, HoursTo: intPtr(4), PriceCentsPerPerson: 25000},
			{HoursFrom: 4, HoursTo: intPtr(5), PriceCentsPerPerson: 30000},
			{HoursFrom: 5, HoursTo: nil, PriceCentsPerPerson: 35000},
		},
		RoundUpToMinutes: 60,
		RoomHourly:       roomHourly,
		Teaching:         teaching,
	}
	openHoliday := pricing.RulesPerDay{
		PerPersonTiers: []pricing.PerPersonTier{
			{HoursFrom: 1, HoursTo: intPtr(2), PriceCentsPerPerson: 10000},
			{HoursFrom: 2, HoursTo: intPtr(3), PriceCentsPerPerson: 20000},
			{HoursFrom: 3, HoursTo: intPtr(4), PriceCentsPerPerson: 30000},
			{HoursFrom: 4, HoursTo: intPtr(5), PriceCentsPerPerson: 35000},
			{HoursFrom: 5, HoursTo: intPtr(6), PriceCentsPerPerson: 40000},
			{HoursFrom: 6, HoursTo: nil, PriceCentsPerPerson: 45000},
		},
		RoundUpToMinutes: 60,
		RoomHourly:       roomHourly,
		Teaching:         teaching,
	}
	roomRules := pricing.RulesPerDay{
		RoundUpToMinutes: 60,
		RoomHourly:       roomHourly,
		Teaching:         teaching,
	}
	roomBRules := pricing.RulesPerDay{
		RoundUpToMinutes: 60,
		RoomHourly:       pricing.RoomHourlyRule{PriceCentsPerHour: 80000, RoundUpToMinutes: 60},
		Teaching: pricing.TeachingRule{
			MinPeople:                    7,
			BaseHours:                    3,
			BasePriceCentsPerPerson:      35000,
			ExtraUnitMinutes:             60,
			ExtraUnitPriceCentsPerPerson: 5000,
		},
	}

	return PricingFile{
		Plans: []PlanConfig{
			{Name: "A區-Default", Weekday: openWeekday, Holiday: openHoliday},
			{Name: "森林/城市包廂", Weekday: roomRules, Holiday: roomRules},
			{Name: "B區包廂", Weekday: roomBRules, Holiday: roomBRules},
		},
		Bindings: []BindingConfig{
			{Scope: "area", Area: "A區", Plan: "A區-Default", Priority: 100},
			{Scope: "table", Table: "森林包廂", Plan: "森林/城市包廂", Priority: 200},
			{Scope: "table", Table: "城市包廂", Plan: "森林/城市包廂", Priority: 200},
			{Scope: "table", Table: "B區包廂", Plan: "B區包廂", Priority: 200},
		},
	}
}

func intPtr(v int) *int { return &v }
