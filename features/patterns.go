package features

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MostlyDigitsRatio is the digit fraction above which a line counts as
// mostly digits
const MostlyDigitsRatio = 0.6

// numberingPattern matches the heading numbering schemes: "1.2.3 ",
// "A.", "(a)", "Phase IV" and "Section 12"
var numberingPattern = regexp.MustCompile(
	`(?i)^((\d{1,2}(\.\d*)*\s)|([A-Za-z]\.)|(\([a-z\d]\))|(Phase\s[IVXLCDM]+)|(Section\s\d+))`,
)

// MatchesNumbering reports whether the trimmed text starts with a heading
// numbering pattern
func MatchesNumbering(s string) bool {
	return numberingPattern.MatchString(strings.TrimSpace(s))
}

// EndsWithColon reports whether the trimmed text ends in ':'
func EndsWithColon(s string) bool {
	return strings.HasSuffix(strings.TrimSpace(s), ":")
}

// IsAllCaps reports whether every letter in s is uppercase. Text without
// letters ("2023", "--") is reported as all caps.
func IsAllCaps(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// IsMostlyDigits reports whether digits make up more than MostlyDigitsRatio
// of the trimmed text
func IsMostlyDigits(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	digits := 0
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits)/float64(utf8.RuneCountInString(trimmed)) > MostlyDigitsRatio
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
