package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Nights returns the number of nights between two dates: the absolute
// distance rounded up to whole days.  Equal dates give zero.
func Nights(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	day := 24 * time.Hour
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

// TotalPrice is nights times the nightly rate.
func TotalPrice(rate decimal.Decimal, nights int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(nights)))
}

// maxRate is the largest value room_tbl.price DECIMAL(10,2) holds.
var maxRate = decimal.RequireFromString("99999999.99")

// ParseRate parses a nightly rate.  Only finite positive decimals with at
// most two fractional digits that fit the price column are accepted, so
// "0", "-5", "abc" and "150.505" all fail with ErrInvalidRate.
func ParseRate(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() || !d.Equal(d.Round(2)) || d.GreaterThan(maxRate) {
		return decimal.Decimal{}, ErrInvalidRate
	}
	return d, nil
}

// stay is a parsed, validated pair of stay dates.
type stay struct {
	checkIn, checkOut time.Time
}

func parseStay(checkIn, checkOut string) (stay, error) {
	if strings.TrimSpace(checkIn) == "" {
		return stay{}, fmt.Errorf("%w: checkIn", ErrMissingField)
	}
	if strings.TrimSpace(checkOut) == "" {
		return stay{}, fmt.Errorf("%w: checkOut", ErrMissingField)
	}
	in, err := model.ParseDate(checkIn)
	if err != nil {
		return stay{}, fmt.Errorf("%w: checkIn", ErrInvalidDate)
	}
	out, err := model.ParseDate(checkOut)
	if err != nil {
		return stay{}, fmt.Errorf("%w: checkOut", ErrInvalidDate)
	}
	return stay{checkIn: in, checkOut: out}, nil
}

func (s stay) nights() int { return Nights(s.checkIn, s.checkOut) }

func quoteFor(c model.RoomCategory, s stay) model.Quote {
	n := s.nights()
	return model.Quote{
		RoomType: c.Type,
		CheckIn:  s.checkIn,
		CheckOut: s.checkOut,
		Nights:   n,
		Rate:     c.Rate,
		Total:    TotalPrice(c.Rate, n),
	}
}
