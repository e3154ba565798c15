// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// Time counts seconds since 0000-01-01T00:00:00Z in the proleptic Gregorian
// calendar, so ordering and arithmetic over the whole encodable range are
// total. Validity comparisons, OCSP timestamps and the fixed test clock all
// use this representation.
type Time int64

// OneDayInSeconds is a day of Time arithmetic.
const OneDayInSeconds = 24 * 60 * 60

// unixEpochSeconds is the offset of 1970-01-01T00:00:00Z from year 0.
const unixEpochSeconds = 719528 * OneDayInSeconds

var (
	// ErrTimeRange indicates a Time outside the encodable range
	// (negative, or year 10000 and beyond).
	ErrTimeRange = errors.New("der: time out of encodable range")

	// ErrUTCTimeRange indicates a year UTCTime cannot carry.
	ErrUTCTimeRange = errors.New("der: year outside UTCTime range")

	// ErrMalformedTime indicates UTCTime or GeneralizedTime contents that do
	// not match the fixed YYMMDDHHMMSSZ / YYYYMMDDHHMMSSZ layout.
	ErrMalformedTime = errors.New("der: malformed encoded time")
)

// FromUnix converts a Unix timestamp.
func FromUnix(sec int64) Time { return Time(sec + unixEpochSeconds) }

// Unix converts back to a Unix timestamp.
func (t Time) Unix() int64 { return int64(t) - unixEpochSeconds }

// daysBeforeYear returns the number of days from year 0 up to January 1st of
// year. Year 0 is a leap year in the proleptic Gregorian calendar.
func daysBeforeYear(year int64) int64 {
	return 365*year + (year+3)/4 - (year+99)/100 + (year+399)/400
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// YMDHMS builds a Time from calendar components. Components must already be
// valid (month 1-12, day within the month, and so on); this is a test-fixture
// constructor, not a validator.
func YMDHMS(year, month, day, hour, minute, second int) Time {
	days := daysBeforeYear(int64(year))
	for m := 1; m < month; m++ {
		days += int64(daysInMonth[m-1])
		if m == 2 && isLeapYear(int64(year)) {
			days++
		}
	}
	days += int64(day - 1)

	total := days * OneDayInSeconds
	total += int64(hour) * 60 * 60
	total += int64(minute) * 60
	total += int64(second)
	return Time(total)
}

// explode splits t into calendar components. Callers must have range-checked
// t to [0, year 10000).
func (t Time) explode() (year, month, day, hour, minute, second int) {
	days := int64(t) / OneDayInSeconds
	rem := int64(t) % OneDayInSeconds

	hour = int(rem / 3600)
	minute = int(rem % 3600 / 60)
	second = int(rem % 60)

	y := days / 366
	for daysBeforeYear(y+1) <= days {
		y++
	}
	dayOfYear := days - daysBeforeYear(y)

	m := 1
	for {
		dim := int64(daysInMonth[m-1])
		if m == 2 && isLeapYear(y) {
			dim++
		}
		if dayOfYear < dim {
			break
		}
		dayOfYear -= dim
		m++
	}
	return int(y), m, int(dayOfYear) + 1, hour, minute, second
}

// Year returns the calendar year of t.
func (t Time) Year() int {
	year, _, _, _, _, _ := t.explode()
	return year
}

// GeneralizedTimeBytes encodes t as a GeneralizedTime (YYYYMMDDHHMMSSZ).
func GeneralizedTimeBytes(a *gc.Arena, t Time) ([]byte, error) {
	return encodeTime(a, t, true)
}

// TimeChoiceBytes encodes t as the RFC 5280 Time CHOICE: UTCTime for years
// in [1950, 2050), GeneralizedTime otherwise. This is the shortest-encoding
// rule certificates must follow.
func TimeChoiceBytes(a *gc.Arena, t Time) ([]byte, error) {
	if t < 0 {
		return nil, ErrTimeRange
	}
	year := t.Year()
	return encodeTime(a, t, year < 1950 || year >= 2050)
}

func encodeTime(a *gc.Arena, t Time, generalized bool) ([]byte, error) {
	if t < 0 || t.Year() > 9999 {
		return nil, ErrTimeRange
	}
	year, month, day, hour, minute, second := t.explode()
	if second >= 60 {
		// round down for leap seconds
		second = 59
	}
	if !generalized && (year < 1950 || year >= 2050) {
		return nil, ErrUTCTimeRange
	}

	size := 15
	if generalized {
		size = 17
	}
	out := a.Alloc(size)

	i := 0
	if generalized {
		out[i] = TagGeneralizedTime
	} else {
		out[i] = TagUTCTime
	}
	i++
	out[i] = byte(size - 2)
	i++

	if generalized {
		out[i] = '0' + byte(year/1000)
		out[i+1] = '0' + byte(year%1000/100)
		i += 2
	}
	out[i] = '0' + byte(year%100/10)
	out[i+1] = '0' + byte(year%10)
	out[i+2] = '0' + byte(month/10)
	out[i+3] = '0' + byte(month%10)
	out[i+4] = '0' + byte(day/10)
	out[i+5] = '0' + byte(day%10)
	out[i+6] = '0' + byte(hour/10)
	out[i+7] = '0' + byte(hour%10)
	out[i+8] = '0' + byte(minute/10)
	out[i+9] = '0' + byte(minute%10)
	out[i+10] = '0' + byte(second/10)
	out[i+11] = '0' + byte(second%10)
	out[i+12] = 'Z'
	return out, nil
}

// ParseTime decodes the contents octets of a UTCTime or GeneralizedTime
// value, identified by tag, back into a Time.
func ParseTime(tag byte, contents []byte) (Time, error) {
	var year int
	var rest []byte
	switch tag {
	case TagUTCTime:
		if len(contents) != 13 {
			return 0, ErrMalformedTime
		}
		yy, err := twoDigits(contents[0:2])
		if err != nil {
			return 0, err
		}
		if yy >= 50 {
			year = 1900 + yy
		} else {
			year = 2000 + yy
		}
		rest = contents[2:]
	case TagGeneralizedTime:
		if len(contents) != 15 {
			return 0, ErrMalformedTime
		}
		hi, err := twoDigits(contents[0:2])
		if err != nil {
			return 0, err
		}
		lo, err := twoDigits(contents[2:4])
		if err != nil {
			return 0, err
		}
		year = hi*100 + lo
		rest = contents[4:]
	default:
		return 0, ErrMalformedTime
	}

	if rest[10] != 'Z' {
		return 0, ErrMalformedTime
	}
	month, err := twoDigits(rest[0:2])
	if err != nil {
		return 0, err
	}
	day, err := twoDigits(rest[2:4])
	if err != nil {
		return 0, err
	}
	hour, err := twoDigits(rest[4:6])
	if err != nil {
		return 0, err
	}
	minute, err := twoDigits(rest[6:8])
	if err != nil {
		return 0, err
	}
	second, err := twoDigits(rest[8:10])
	if err != nil {
		return 0, err
	}
	if month < 1 || month > 12 || day < 1 || day > 31 ||
		hour > 23 || minute > 59 || second > 59 {
		return 0, ErrMalformedTime
	}
	return YMDHMS(year, month, day, hour, minute, second), nil
}

func twoDigits(b []byte) (int, error) {
	if b[0] < '0' || b[0] > '9' || b[1] < '0' || b[1] > '9' {
		return 0, ErrMalformedTime
	}
	return int(b[0]-'0')*10 + int(b[1]-'0'), nil
}
