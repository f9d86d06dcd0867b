// FILE: internal/format/format.go
//
// Russian-locale presentation helpers. Every formatter accepts missing input
// and renders the em-dash placeholder instead of failing, so view assembly
// never branches on nil.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Placeholder renders for any absent value.
const Placeholder = "—"

// CancelledLabel replaces the deadline countdown when a procurement is
// cancelled.
const CancelledLabel = "Закупка отменена"

// Currency renders an amount with space-grouped thousands, up to two
// fraction digits and the ruble sign: 1 234 567,89 ₽. Grouping uses a plain
// ASCII space, matching the report texts everywhere else.
func Currency(amount *float64) string {
	if amount == nil {
		return Placeholder
	}
	return groupNumber(*amount) + " ₽"
}

// Number renders a plain grouped number without a unit.
func Number(amount *float64) string {
	if amount == nil {
		return Placeholder
	}
	return groupNumber(*amount)
}

// Percent renders "N%" with up to two fraction digits.
func Percent(value *float64) string {
	if value == nil {
		return Placeholder
	}
	return trimFraction(*value) + "%"
}

func groupNumber(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := trimFraction(v)
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, ','); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	n := len(intPart)
	for i, r := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// trimFraction formats with at most two fraction digits, comma separator,
// no trailing zeros.
func trimFraction(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return strings.ReplaceAll(s, ".", ",")
}

// YesNo renders boolean flags the way the report does.
func YesNo(v *bool) string {
	if v == nil {
		return Placeholder
	}
	if *v {
		return "Да"
	}
	return "Нет"
}

// Text renders an optional string.
func Text(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return Placeholder
	}
	return *v
}

// ruDateLayouts cover the portal's dd.mm.yyyy family; ISO 8601 is the
// fallback for backend-originated timestamps.
var ruDateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts both the portal's Russian date format and ISO 8601.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range ruDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Date renders dd.mm.yyyy or the placeholder.
func Date(s *string) string {
	if s == nil {
		return Placeholder
	}
	t, err := ParseDate(*s)
	if err != nil {
		return Placeholder
	}
	return t.Format("02.01.2006")
}

// DateTime renders dd.mm.yyyy hh:mm or the placeholder.
func DateTime(s *string) string {
	if s == nil {
		return Placeholder
	}
	t, err := ParseDate(*s)
	if err != nil {
		return Placeholder
	}
	return t.Format("02.01.2006 15:04")
}

// Deadline renders the submission countdown. A cancelled procurement always
// reads "Закупка отменена" regardless of the date.
func Deadline(deadline *string, cancelled bool, now time.Time) string {
	if cancelled {
		return CancelledLabel
	}
	if deadline == nil {
		return Placeholder
	}
	t, err := ParseDate(*deadline)
	if err != nil {
		return Placeholder
	}

	diff := t.Sub(now)
	expired := diff < 0
	if expired {
		diff = -diff
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24

	if expired {
		return fmt.Sprintf("истекло %d дн. %d ч.", days, hours)
	}
	return fmt.Sprintf("осталось %d дн. %d ч.", days, hours)
}

// FileSize renders a byte count in Б/КБ/МБ/ГБ with one fraction digit above
// kilobytes.
func FileSize(size *int64) string {
	if size == nil {
		return Placeholder
	}
	b := float64(*size)
	switch {
	case b < 1024:
		return fmt.Sprintf("%d Б", *size)
	case b < 1024*1024:
		return fmt.Sprintf("%s КБ", trimFraction(round1(b/1024)))
	case b < 1024*1024*1024:
		return fmt.Sprintf("%s МБ", trimFraction(round1(b/1024/1024)))
	default:
		return fmt.Sprintf("%s ГБ", trimFraction(round1(b/1024/1024/1024)))
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Phone renders the display mask +7 (999) 123-45-67 when the number has the
// full eleven digits; anything else passes through unchanged.
func Phone(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	if len(digits) != 11 || digits[0] != '7' {
		return raw
	}
	return fmt.Sprintf("+7 (%s) %s-%s-%s", digits[1:4], digits[4:7], digits[7:9], digits[9:11])
}

// PhoneDigits normalizes a masked number to the wire form +7XXXXXXXXXX.
func PhoneDigits(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	if len(digits) == 10 {
		digits = "7" + digits
	}
	if len(digits) != 11 || digits[0] != '7' {
		return raw
	}
	return "+" + digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
