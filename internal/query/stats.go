package query

import "math"

// Number is the set of numeric types Sum and Mean accept.
type Number interface {
	~int | ~int64 | ~float64
}

// Sum adds get(r) over records.
func Sum[R any, N Number](records []R, get func(R) N) N {
	var total N
	for _, r := range records {
		total += get(r)
	}
	return total
}

// Mean averages get(r) over records. Returns 0 for an empty sequence.
func Mean[R any, N Number](records []R, get func(R) N) float64 {
	if len(records) == 0 {
		return 0
	}
	return float64(Sum(records, get)) / float64(len(records))
}

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Round1 rounds to one decimal place, the precision every page displays.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
