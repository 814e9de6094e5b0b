package validators

import (
	"regexp"
	"strings"
)

// Formats acceptés : SIV (AA-123-BB) et ancien FNI (123 ABC 75).
var (
	sivPattern = regexp.MustCompile(`^[A-Z]{2}-\d{3}-[A-Z]{2}$`)
	fniPattern = regexp.MustCompile(`^\d{1,4}\s?[A-Z]{2,3}\s?\d{2,3}$`)
)

func IsPlateValid(plate string) bool {
	p := strings.ToUpper(strings.TrimSpace(plate))
	return sivPattern.MatchString(p) || fniPattern.MatchString(p)
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
