package validators

import (
	"regexp"
	"strings"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
)

const laoCountryCode = "+856"

// Lao mobile numbers: +856 20 followed by 7 to 9 digits.
var laoMobilePattern = regexp.MustCompile(`^\+85620\d{7,9}$`)

var ErrInvalidPhoneFormat = httperr.ErrBusiness(httperr.CodeInvalidPhoneFormat)

// NormalizeLaoPhone converts the usual ways of typing a Lao mobile number
// (020xxxxxxxx, 20xxxxxxxx, 85620xxxxxxxx, +85620xxxxxxxx, with spaces,
// dashes or brackets) into +85620xxxxxxxx. A blank input yields "" and no error.
func NormalizeLaoPhone(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", nil
	}

	hasPlus := strings.HasPrefix(p, "+")
	digits := onlyDigits(p)

	var e164 string
	switch {
	case hasPlus, strings.HasPrefix(digits, "856"):
		// Foreign country codes fall through to the pattern check.
		e164 = "+" + digits
	case strings.HasPrefix(digits, "0"):
		e164 = laoCountryCode + digits[1:]
	default:
		e164 = laoCountryCode + digits
	}

	if !laoMobilePattern.MatchString(e164) {
		return "", ErrInvalidPhoneFormat
	}
	return e164, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
