package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
)

// DateRange represents a half-open stay interval [checkIn, checkOut).
// The exclusive end is what makes same-day turnover possible: a checkout
// and a new check-in on the same date never overlap.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints (dr.CheckOut == other.CheckIn) do not overlap.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// ContainsDate reports whether t falls inside the interval. The check-in
// instant is included, the check-out instant is not.
func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

// Extend returns a copy with the checkout moved to newCheckOut.
func (dr DateRange) Extend(newCheckOut time.Time) (DateRange, error) {
	return New(dr.CheckIn, newCheckOut)
}
