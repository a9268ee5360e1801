package pricing

// SplitEvenly distributes total across n parties: everyone gets the floor
// share and the remainder goes one unit at a time to the first entries.
// The shares always sum to total and no two shares differ by more than one
// unit. Callers pass parties in start-time order so the earliest arrivals
// carry the extra cents.
func SplitEvenly(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	remainder := total - base*int64(n)

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}

// RescaleToTotal scales parts proportionally so they sum to target. Each part
// is rescaled by target/sum(parts) with rounding, and the last part absorbs
// the accumulated rounding remainder so the sum equals target exactly. When
// the parts sum to zero there is no ratio to apply, so target is split by
// floor division with the last part absorbing the remainder.
func RescaleToTotal(parts []int64, target int64) []int64 {
	n := len(parts)
	if n == 0 {
		return nil
	}

	var rawTotal int64
	for _, p := range parts {
		rawTotal += p
	}

	out := make([]int64, n)
	var running int64
	for i, p := range parts {
		var scaled int64
		if rawTotal == 0 {
			scaled = target / int64(n)
		} else {
			scaled = roundDiv(p*target, rawTotal)
		}
		if i == n-1 {
			scaled = target - running
		}
		out[i] = scaled
		running += scaled
	}
	return out
}

// TeachingFloorTarget is the total that minPeople people would have paid on
// average, given what actualPeople actually accrued. Only meaningful when
// actualPeople < minPeople.
func TeachingFloorTarget(rawTotal int64, actualPeople, minPeople int) int64 {
	if actualPeople <= 0 {
		return 0
	}
	return roundDiv(rawTotal*int64(minPeople), int64(actualPeople))
}

// roundDiv divides a by b rounding half away from zero. Both operands are
// non-negative in practice.
func roundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}
