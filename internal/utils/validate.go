package utils

import "regexp"

var (
	rollNoRe   = regexp.MustCompile(`^[0-9]{8}$`)
	mobileNoRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidRollNo reports whether s is exactly 8 ASCII digits.
func ValidRollNo(s string) bool {
	return rollNoRe.MatchString(s)
}

// ValidMobileNo reports whether s is exactly 10 ASCII digits.
func ValidMobileNo(s string) bool {
	return mobileNoRe.MatchString(s)
}
