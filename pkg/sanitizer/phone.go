package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	defaultRegions = []string{
		"US",
		"IL",
	}
)

// NormalizePhone formats the number as E.164 using the first region it parses
// in. Numbers carrying a +country prefix parse regardless of region. Input that
// is not a possible number in any region is kept as trimmed free text.
func NormalizePhone(phone string, regions ...string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}
	if len(regions) == 0 {
		regions = defaultRegions
	}

	for _, region := range regions {
		parsedNumber, err := phonenumbers.Parse(phone, strings.ToUpper(region))
		if err == nil && phonenumbers.IsPossibleNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return TrimAndNormalize(phone)
}

// PhoneNormalizer binds regions so NormalizePhone can run as a Strategy.
func PhoneNormalizer(regions []string) Strategy {
	return func(phone string) string {
		return NormalizePhone(phone, regions...)
	}
}

// SupportedRegion reports whether phone metadata exists for region.
func SupportedRegion(region string) bool {
	return phonenumbers.GetSupportedRegions()[strings.ToUpper(region)]
}
