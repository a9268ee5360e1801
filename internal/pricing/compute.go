package pricing

// TierResult is the outcome of the per-person tiered calculator.
type TierResult struct {
	PerPersonCents int64
	MatchedHours   int
}

// RoomResult is the outcome of the room-hourly calculator.
type RoomResult struct {
	TotalCents  int64
	BilledHours int
}

// TeachingResult is the outcome of the room-wide teaching calculator.
type TeachingResult struct {
	PerPersonCents int64
	BilledPeople   int
	TotalCents     int64
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func roundUpMinutes(mins, step int) int {
	if step <= 0 {
		return mins
	}
	return ceilDiv(mins, step) * step
}

// ClampMinutes floors an elapsed-minute value at 1 so that clock skew or a
// same-minute open/close still bills the smallest unit.
func ClampMinutes(mins int) int {
	if mins < 1 {
		return 1
	}
	return mins
}

// ComputePerPersonTier prices one ticket on open seating. Minutes are rounded
// up to the rule set's granularity, converted to a whole-hour tier index and
// matched against the ordered tier list. When the index lands in a gap, the
// tier with the greatest HoursFrom is treated as the open-ended ceiling tier;
// this fallback covers configuration gaps that should not happen.
func ComputePerPersonTier(totalMinutes int, rules RulesPerDay) (TierResult, error) {
	mins := roundUpMinutes(ClampMinutes(totalMinutes), rules.RoundUpToMinutes)
	hours := ceilDiv(mins, 60)
	if hours < 1 {
		hours = 1
	}

	for _, t := range rules.PerPersonTiers {
		if hours >= t.HoursFrom && (t.HoursTo == nil || hours < *t.HoursTo) {
			return TierResult{PerPersonCents: t.PriceCentsPerPerson, MatchedHours: hours}, nil
		}
	}

	if len(rules.PerPersonTiers) == 0 {
		return TierResult{}, ErrNoTiers
	}

	fallback := rules.PerPersonTiers[0]
	for _, t := range rules.PerPersonTiers[1:] {
		if t.HoursFrom > fallback.HoursFrom {
			fallback = t
		}
	}
	return TierResult{PerPersonCents: fallback.PriceCentsPerPerson, MatchedHours: hours}, nil
}

// ComputeRoomHourly prices a whole room session: minutes rounded up to the
// rule's granularity, ceiling-divided into billed hours, times the hourly
// rate. Applied once per session from the earliest occupant's start.
func ComputeRoomHourly(totalMinutes int, rule RoomHourlyRule) RoomResult {
	mins := roundUpMinutes(ClampMinutes(totalMinutes), rule.RoundUpToMinutes)
	hours := ceilDiv(mins, 60)
	return RoomResult{
		TotalCents:  int64(hours) * rule.PriceCentsPerHour,
		BilledHours: hours,
	}
}

// ComputeTeaching prices a teaching session where everyone shares the same
// elapsed time. Billed headcount never drops below MinPeople; the floor is a
// markup, never a discount.
func ComputeTeaching(totalMinutes, people int, rule TeachingRule) TeachingResult {
	billed := people
	if billed < rule.MinPeople {
		billed = rule.MinPeople
	}
	perPerson := ComputeTeachingPerPerson(totalMinutes, rule)
	return TeachingResult{
		PerPersonCents: perPerson,
		BilledPeople:   billed,
		TotalCents:     int64(billed) * perPerson,
	}
}

// ComputeTeachingPerPerson prices one occupant's own elapsed time under the
// teaching rule. Used at checkout when occupants arrived at different times.
func ComputeTeachingPerPerson(totalMinutes int, rule TeachingRule) int64 {
	mins := ClampMinutes(totalMinutes)
	baseMins := rule.BaseHours * 60
	if mins <= baseMins {
		return rule.BasePriceCentsPerPerson
	}
	extra := mins - baseMins
	units := extra
	if rule.ExtraUnitMinutes > 0 {
		units = ceilDiv(extra, rule.ExtraUnitMinutes)
	}
	return rule.BasePriceCentsPerPerson + int64(units)*rule.ExtraUnitPriceCentsPerPerson
}
