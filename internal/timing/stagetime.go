// Package timing holds the stage time and delta value types used by the
// report engine.
package timing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StageTime is an elapsed time on a stage or at a split point.
// The zero value means no time was recorded (DNS, DNF or split not reached).
type StageTime struct {
	d time.Duration
}

// ParseError is returned when a time string matches none of the accepted forms.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid stage time %q", e.Input)
}

var (
	nanosPerSecond = decimal.NewFromInt(int64(time.Second))
	// longest time a Duration can hold
	maxSeconds = decimal.NewFromInt(math.MaxInt64).Div(nanosPerSecond).Floor()
)

// New wraps d as a StageTime.
func New(d time.Duration) StageTime {
	return StageTime{d: d}
}

// Seconds builds a StageTime from a number of seconds.
func Seconds(s float64) StageTime {
	return StageTime{d: time.Duration(s * float64(time.Second))}
}

// ParseStageTime accepts "H:MM:SS.f", "M:SS.f", "SS.f" and "M:SS".
// The empty string yields the zero (invalid) StageTime.
func ParseStageTime(s string) (StageTime, error) {
	if s == "" {
		return StageTime{}, nil
	}
	fail := func() (StageTime, error) { return StageTime{}, &ParseError{Input: s} }

	parts := strings.Split(s, ":")
	var hours, minutes int64
	var secs decimal.Decimal
	var ok bool

	switch len(parts) {
	case 3:
		if hours, ok = digits(parts[0]); !ok {
			return fail()
		}
		if minutes, ok = digits(parts[1]); !ok {
			return fail()
		}
		if secs, ok = fractional(parts[2]); !ok {
			return fail()
		}
	case 2:
		if minutes, ok = digits(parts[0]); !ok {
			return fail()
		}
		if strings.Contains(parts[1], ".") {
			secs, ok = fractional(parts[1])
		} else {
			var whole int64
			whole, ok = digits(parts[1])
			secs = decimal.NewFromInt(whole)
		}
		if !ok {
			return fail()
		}
	case 1:
		if secs, ok = fractional(parts[0]); !ok {
			return fail()
		}
	default:
		return fail()
	}

	total := decimal.NewFromInt(hours).Mul(decimal.NewFromInt(3600)).
		Add(decimal.NewFromInt(minutes).Mul(decimal.NewFromInt(60))).
		Add(secs)
	if total.GreaterThan(maxSeconds) {
		return fail()
	}
	return StageTime{d: time.Duration(total.Mul(nanosPerSecond).IntPart())}, nil
}

// MustParse is ParseStageTime for literals known to be valid.
func MustParse(s string) StageTime {
	t, err := ParseStageTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// digits parses a non-empty run of ASCII digits.
func digits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// fractional parses "D+.D+" and rounds it to tenths.
func fractional(s string) (decimal.Decimal, bool) {
	whole, frac, found := strings.Cut(s, ".")
	if !found {
		return decimal.Decimal{}, false
	}
	if _, ok := digits(whole); !ok {
		return decimal.Decimal{}, false
	}
	if _, ok := digits(frac); !ok {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v.Round(1), true
}

// Valid reports whether a time was recorded.
func (t StageTime) Valid() bool {
	return t.d != 0
}

// Duration returns the underlying duration.
func (t StageTime) Duration() time.Duration {
	return t.d
}

// Add returns t+o. Callers check validity first.
func (t StageTime) Add(o StageTime) StageTime {
	return StageTime{d: t.d + o.d}
}

// Sub returns t-o. Callers check validity first.
func (t StageTime) Sub(o StageTime) StageTime {
	return StageTime{d: t.d - o.d}
}

// Compare returns -1, 0 or +1 depending on whether t is faster than, equal
// to or slower than o.
func (t StageTime) Compare(o StageTime) int {
	switch {
	case t.d < o.d:
		return -1
	case t.d > o.d:
		return 1
	}
	return 0
}

// Less reports whether t is faster than o.
func (t StageTime) Less(o StageTime) bool {
	return t.d < o.d
}

// String renders the time as "1:02:03.40", "02:03.40" or "03.40".
func (t StageTime) String() string {
	hundredths := int64(t.d / (10 * time.Millisecond))
	cs := hundredths % 100
	secs := hundredths / 100

	hours := secs / 3600
	secs %= 3600
	mins := secs / 60
	secs %= 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, mins, secs, cs)
	}
	if mins > 0 {
		return fmt.Sprintf("%02d:%02d.%02d", mins, secs, cs)
	}
	return fmt.Sprintf("%02d.%02d", secs, cs)
}

// MarshalText renders valid times with String and invalid ones as "".
func (t StageTime) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return []byte{}, nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses the forms accepted by ParseStageTime.
func (t *StageTime) UnmarshalText(b []byte) error {
	v, err := ParseStageTime(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
