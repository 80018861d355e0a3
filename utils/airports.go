// utils/airports.go
package utils

import "strings"

// NormalizeCode trims and uppercases an airport or aircraft code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsICAO reports whether code looks like a 4-letter ICAO location indicator.
func IsICAO(code string) bool {
	return len(code) == 4 && isAlnum(code)
}

// IsIATA reports whether code looks like a 3-letter IATA airport code.
func IsIATA(code string) bool {
	return len(code) == 3 && isAlnum(code)
}

// IsAircraftType reports whether code looks like an ICAO aircraft type designator (2-4 characters).
func IsAircraftType(code string) bool {
	return len(code) >= 2 && len(code) <= 4 && isAlnum(code)
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
