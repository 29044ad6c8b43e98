package tracklog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var truthy = map[string]bool{"y": true, "yes": true, "true": true, "1": true}

// ParseBool coerces boolean-ish cells. Anything outside the truthy set,
// including empty cells, is false.
func ParseBool(raw string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(raw))]
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// firstNumber extracts the first numeric substring as a decimal.
func firstNumber(raw string) (decimal.Decimal, bool) {
	m := numberPattern.FindString(raw)
	if m == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseTHC normalizes a THC cell to a 0-100 percentage. Values at or
// below 1 are treated as fractions and scaled ("0.18" means 18%, not
// 0.18% - the exports never recorded sub-1% readings). Empty or
// unparseable cells report ok=false and the field stays unset.
func ParseTHC(raw string) (float64, bool) {
	d, ok := firstNumber(raw)
	if !ok {
		return 0, false
	}
	if d.LessThanOrEqual(decimal.NewFromInt(1)) {
		d = d.Mul(decimal.NewFromInt(100))
	}
	f, _ := d.Float64()
	return f, true
}

// ParseDateTime parses the export timestamp format "M/D/YY h:mm AM/PM".
// Dots are tolerated as date separators (a recurring typo in the old
// exports) and am/pm may be attached to the minutes. Anything that does
// not yield a real calendar date falls back to now's date at 12:00.
func ParseDateTime(raw string, now time.Time) (date string, clock string) {
	date = now.Format("2006-01-02")
	clock = "12:00"

	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return date, clock
	}

	if d, ok := parseDatePart(fields[0]); ok {
		date = d
	} else {
		return date, clock
	}

	if len(fields) > 1 {
		timePart := strings.Join(fields[1:], " ")
		if c, ok := parseTimePart(timePart); ok {
			clock = c
		}
	}
	return date, clock
}

func parseDatePart(s string) (string, bool) {
	s = strings.ReplaceAll(s, ".", "/")
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	// Reject impossible dates: time.Date normalizes overflow (e.g. day 40
	// rolls into the next month), so a round-trip mismatch means invalid.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if month < 1 || month > 12 || int(t.Month()) != month || t.Day() != day || t.Year() != year {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func parseTimePart(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}

	switch meridiem {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	}
	if hour > 23 {
		return "", false
	}
	return padTwo(hour) + ":" + padTwo(minute), true
}

func padTwo(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
