package fiscal

import (
	"fmt"
	"strconv"
	"time"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
)

const recopiLen = 20

// recopiWeights run from 19 down to 1; the first check digit skips the 19.
var recopiWeights = []int{19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

// CheckRECOPI validates a RECOPI number: YYYYMMDDhhmmss, four free digits and
// two check digits. The date must be a calendar date later than the current
// month of now, or any date before 2013.
func CheckRECOPI(value string, now time.Time) error {
	if len(value) != recopiLen {
		return fmt.Errorf("RECOPI %q has %d characters, want %d: %w", value, len(value), recopiLen, domain.ErrLengthMismatch)
	}
	if !digits.IsDigits(value) {
		return fmt.Errorf("RECOPI %q must be numeric: %w", value, domain.ErrInvalidFormat)
	}
	stamp, err := time.Parse("20060102150405", value[:14])
	if err != nil {
		return fmt.Errorf("RECOPI %q date/time: %w", value, domain.ErrInvalidEmissionDate)
	}
	if !recopiDateAccepted(stamp, now) {
		return fmt.Errorf("RECOPI %q date %s: %w", value, stamp.Format("2006-01-02"), domain.ErrInvalidEmissionDate)
	}
	vals := digits.Values(value)
	if recopiFirstDigit(vals) != vals[18] || recopiSecondDigit(vals) != vals[19] {
		return fmt.Errorf("RECOPI %q: %w", value, domain.ErrChecksumMismatch)
	}
	return nil
}

// ValidateRECOPI reports whether value is a valid RECOPI number at time now.
func ValidateRECOPI(value string, now time.Time) bool { return CheckRECOPI(value, now) == nil }

func recopiDateAccepted(d, now time.Time) bool {
	switch {
	case d.Year() > now.Year():
		return true
	case d.Year() == now.Year() && d.Month() > now.Month():
		return true
	default:
		return d.Year() < 2013
	}
}

// recopiFirstDigit and recopiSecondDigit may return 10 or 11, which never
// matches a digit and makes the number invalid.
func recopiFirstDigit(vals []int) int {
	return 11 - digits.WeightedSum(vals[:18], recopiWeights[1:])%11
}

func recopiSecondDigit(vals []int) int {
	return 11 - digits.WeightedSum(vals[:19], recopiWeights)%11
}

// GenerateRECOPI builds a valid RECOPI dated January 1st of the year after now.
// The four free digits start at 1234 and advance until both check digits fit
// in a single digit.
func GenerateRECOPI(now time.Time) string {
	prefix := strconv.Itoa(now.Year()+1) + "0101" + "080000"
	for n := 0; n < 10000; n++ {
		base := prefix + fmt.Sprintf("%04d", (1234+n)%10000)
		vals := digits.Values(base)
		first := recopiFirstDigit(vals)
		if first > 9 {
			continue
		}
		second := recopiSecondDigit(append(vals, first))
		if second > 9 {
			continue
		}
		return base + strconv.Itoa(first) + strconv.Itoa(second)
	}
	return ""
}
