// Package labels assigns short occupant labels within a session:
// A..Z, then AA..AZ, BA..BZ and so on.
package labels

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Next returns the labels for countNeeded new arrivals given how many
// tickets the session already has.
func Next(existingCount, countNeeded int) []string {
	if countNeeded <= 0 {
		return nil
	}
	out := make([]string, 0, countNeeded)
	for i := 0; i < countNeeded; i++ {
		out = append(out, FromIndex(existingCount+i))
	}
	return out
}

// FromIndex converts a zero-based index to its label (0 -> A, 25 -> Z,
// 26 -> AA).
func FromIndex(n int) string {
	if n < 0 {
		n = 0
	}
	s := ""
	x := n
	for {
		s = string(alphabet[x%26]) + s
		x = x/26 - 1
		if x < 0 {
			break
		}
	}
	return s
}
