package pricing

import "time"

// Registry holds the static plan bindings and the calendar. It is built once
// at startup and never mutated afterwards, so it is safe for concurrent use.
type Registry struct {
	calendar *Calendar
	bindings []Binding
}

// Resolution is the outcome of resolving a table identity at an instant.
type Resolution struct {
	Plan  *Plan
	Day   DayType
	Rules RulesPerDay
}

func NewRegistry(calendar *Calendar, bindings []Binding) *Registry {
	if calendar == nil {
		calendar = NewCalendar(time.Local, nil)
	}
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return &Registry{calendar: calendar, bindings: out}
}

// Calendar exposes the registry's day classifier.
func (r *Registry) Calendar() *Calendar { return r.calendar }

// Resolve picks the plan for (tableName, area) at the given instant. Among
// matching bindings the highest priority wins; on equal priority the binding
// registered first wins. When nothing matches, the first registered
// area-scoped binding acts as the default plan; if none exists either, the
// configuration is broken and ErrNoBinding is returned.
func (r *Registry) Resolve(tableName, area string, at time.Time) (Resolution, error) {
	day := r.calendar.Classify(at)

	var hit *Binding
	for i := range r.bindings {
		b := &r.bindings[i]
		match := (b.Scope == ScopeTable && b.TableName == tableName) ||
			(b.Scope == ScopeArea && b.Area == area)
		if !match {
			continue
		}
		if hit == nil || b.Priority > hit.Priority {
			hit = b
		}
	}

	if hit == nil {
		for i := range r.bindings {
			if r.bindings[i].Scope == ScopeArea {
				hit = &r.bindings[i]
				break
			}
		}
	}
	if hit == nil || hit.Plan == nil {
		return Resolution{}, ErrNoBinding
	}

	return Resolution{
		Plan:  hit.Plan,
		Day:   day,
		Rules: hit.Plan.Rules[day],
	}, nil
}
