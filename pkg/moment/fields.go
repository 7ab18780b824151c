package moment

import (
	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/chinese"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/hebrew"
	"github.com/chrissnell/univtime/pkg/julian"
	"github.com/shopspring/decimal"
)

// Fields holds the components of a calendar date and time. Through names
// the finest component supplied, Year when zero: components after it are
// ignored and take their first value. Cycle and Leap are read only by
// FromChinese.
type Fields struct {
	Cycle  int
	Year   int
	Month  int
	Leap   bool
	Day    int
	Hour   int
	Minute int
	Second decimal.Decimal

	Through Precision
}

// YMD returns Fields supplied through the day.
func YMD(year, month, day int) Fields {
	return Fields{Year: year, Month: month, Day: day, Through: Day}
}

// At returns f extended with a time of day, supplied through the second.
func (f Fields) At(hour, minute int, second decimal.Decimal) Fields {
	f.Hour, f.Minute, f.Second = hour, minute, second
	f.Through = Second
	return f
}

// complete fills the components f does not supply with their first
// value. firstMonth is the month a year starts with.
func (f Fields) complete(firstMonth int) (Fields, error) {
	if f.Through == 0 {
		f.Through = Year
	}
	if f.Through < Year || f.Through > Second {
		return Fields{}, calerr.InvalidPrecision("fields supplied through %v", f.Through)
	}
	if f.Through < Month {
		f.Month, f.Leap = firstMonth, false
	}
	if f.Through < Day {
		f.Day = 1
	}
	if f.Through < Hour {
		f.Hour = 0
	}
	if f.Through < Minute {
		f.Minute = 0
	}
	if f.Through < Second {
		f.Second = decimal.Zero
	}
	return f, checkClock(f.Hour, f.Minute, f.Second)
}

func (f Fields) build(rd int64, declared Precision) (Moment, error) {
	p, err := resolve(declared, f.Through)
	if err != nil {
		return Moment{}, err
	}
	return New(decimal.NewFromInt(rd), f.Hour, f.Minute, f.Second, p)
}

// FromGregorian validates f as a Gregorian date and time. A zero declared
// precision takes the precision of the finest component supplied; a
// declared precision must match it, or be sub-second when seconds are
// supplied.
func FromGregorian(f Fields, declared Precision) (Moment, error) {
	f, err := f.complete(gregorian.January)
	if err != nil {
		return Moment{}, err
	}
	d, err := gregorian.New(f.Year, f.Month, f.Day)
	if err != nil {
		return Moment{}, err
	}
	return f.build(d.Fixed(), declared)
}

// FromJulian validates f as a Julian date and time.
func FromJulian(f Fields, declared Precision) (Moment, error) {
	f, err := f.complete(1)
	if err != nil {
		return Moment{}, err
	}
	d, err := julian.New(f.Year, f.Month, f.Day)
	if err != nil {
		return Moment{}, err
	}
	return f.build(d.Fixed(), declared)
}

// FromHebrew validates f as a Hebrew date and time. A year alone means
// its first day, 1 Tishri.
func FromHebrew(f Fields, declared Precision) (Moment, error) {
	f, err := f.complete(hebrew.Tishri)
	if err != nil {
		return Moment{}, err
	}
	d, err := hebrew.New(f.Year, f.Month, f.Day)
	if err != nil {
		return Moment{}, err
	}
	return f.build(d.Fixed(), declared)
}

// FromChinese validates f as a Chinese date and time. Cycle is always
// required along with the year.
func FromChinese(f Fields, declared Precision) (Moment, error) {
	f, err := f.complete(1)
	if err != nil {
		return Moment{}, err
	}
	d, err := chinese.New(f.Cycle, f.Year, f.Month, f.Leap, f.Day)
	if err != nil {
		return Moment{}, err
	}
	rd, err := d.Fixed()
	if err != nil {
		return Moment{}, err
	}
	return f.build(rd, declared)
}

// FromDate builds a Moment of day precision from any calendar Date.
func FromDate(d Date) (Moment, error) {
	rd, err := Fixed(d)
	if err != nil {
		return Moment{}, err
	}
	p := Day
	if d.Calendar() == Geological {
		p = Year
	}
	return New(decimal.NewFromInt(rd), 0, 0, decimal.Zero, p)
}
