package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }
func bptr(v bool) *bool       { return &v }

func TestCurrency(t *testing.T) {
	assert.Equal(t, Placeholder, Currency(nil))
	assert.Equal(t, "1 234 567,89 ₽", Currency(fptr(1234567.89)))
	assert.Equal(t, "500 ₽", Currency(fptr(500)))
	assert.Equal(t, "1 000 ₽", Currency(fptr(1000)))
	assert.Equal(t, "-12 500,5 ₽", Currency(fptr(-12500.50)))
	// groups are joined with a plain ASCII space, never U+00A0
	assert.NotContains(t, Currency(fptr(1234567.89)), "\u00a0")
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Да", YesNo(bptr(true)))
	assert.Equal(t, "Нет", YesNo(bptr(false)))
	assert.Equal(t, Placeholder, YesNo(nil))
}

func TestParseDateRussianAndISO(t *testing.T) {
	got, err := ParseDate("15.03.2025 14:30")
	assert.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 14, got.Hour())

	got, err = ParseDate("2025-03-15T14:30:00")
	assert.NoError(t, err)
	assert.Equal(t, 30, got.Minute())

	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestDeadline(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	assert.Equal(t, CancelledLabel, Deadline(sptr("15.03.2025 12:00"), true, now))
	assert.Equal(t, CancelledLabel, Deadline(nil, true, now))
	assert.Equal(t, Placeholder, Deadline(nil, false, now))

	assert.Equal(t, "осталось 5 дн. 3 ч.", Deadline(sptr("15.03.2025 15:00"), false, now))
	assert.Equal(t, "истекло 2 дн. 6 ч.", Deadline(sptr("08.03.2025 06:00"), false, now))
}

func TestFileSize(t *testing.T) {
	size := func(v int64) *int64 { return &v }
	assert.Equal(t, Placeholder, FileSize(nil))
	assert.Equal(t, "512 Б", FileSize(size(512)))
	assert.Equal(t, "1,5 КБ", FileSize(size(1536)))
	assert.Equal(t, "2 МБ", FileSize(size(2*1024*1024)))
	assert.Equal(t, "1,2 ГБ", FileSize(size(1288490189)))
}

func TestPhoneMask(t *testing.T) {
	assert.Equal(t, "+7 (999) 123-45-67", Phone("+79991234567"))
	assert.Equal(t, "+7 (999) 123-45-67", Phone("89991234567"))
	assert.Equal(t, "short", Phone("short"))

	assert.Equal(t, "+79991234567", PhoneDigits("+7 (999) 123-45-67"))
	assert.Equal(t, "+79991234567", PhoneDigits("9991234567"))
	assert.Equal(t, "+79991234567", PhoneDigits("8 999 123 45 67"))
}

func TestTextAndPercent(t *testing.T) {
	assert.Equal(t, Placeholder, Text(nil))
	assert.Equal(t, Placeholder, Text(sptr("   ")))
	assert.Equal(t, "ООО Ромашка", Text(sptr("ООО Ромашка")))

	assert.Equal(t, "5%", Percent(fptr(5)))
	assert.Equal(t, "0,5%", Percent(fptr(0.5)))
	assert.Equal(t, Placeholder, Percent(nil))
}
