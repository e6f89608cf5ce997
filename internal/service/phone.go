package service

import "regexp"

// e164Pattern accepts "+" followed by exactly 11 digits, the subset used for
// North American numbers. It is not full E.164.
var e164Pattern = regexp.MustCompile(`^\+[0-9]{11}$`)

func ValidatePhone(phone string) bool {
	return e164Pattern.MatchString(phone)
}
