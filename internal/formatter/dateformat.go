package formatter

import "strings"

// DateLayout translates a date-pattern string using year/month/day style
// tokens into a Go time layout. Supported tokens:
//
//	Y 2006   y 06   m 01   n 1   d 02   j 2
//	H 15     i 04   s 05
//
// G is accepted as an alias of H; Go layouts have no unpadded 24-hour
// token.
//
// A backslash escapes the following character; any other character passes
// through literally.
func DateLayout(pattern string) string {
	var sb strings.Builder
	escaped := false
	for _, ch := range pattern {
		if escaped {
			sb.WriteRune(ch)
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case 'Y':
			sb.WriteString("2006")
		case 'y':
			sb.WriteString("06")
		case 'm':
			sb.WriteString("01")
		case 'n':
			sb.WriteString("1")
		case 'd':
			sb.WriteString("02")
		case 'j':
			sb.WriteString("2")
		case 'H', 'G':
			sb.WriteString("15")
		case 'i':
			sb.WriteString("04")
		case 's':
			sb.WriteString("05")
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}
