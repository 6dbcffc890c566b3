package flexfs

import (
	"strings"
	"time"
)

// expandTimePlaceholders formats pathTemplate through a strftime-style
// evaluator over t, in either UTC or the local zone per expansion. Go has
// no native strftime; each supported directive is rendered on its own via
// the matching reference-time layout, and all other text is copied through
// unchanged. Separators produced by
// the expansion are significant: the result is interpreted as a path.
func expandTimePlaceholders(pathTemplate string, t time.Time, expansion TimeExpansion) (string, error) {
	switch expansion {
	case ExpandUTC:
		t = t.UTC()
	case ExpandLocal:
		t = t.Local()
	}
	return strftime(pathTemplate, t), nil
}

// strftime supports the common subset of strftime conversion specifiers
// needed to expand time placeholders in a destination path: year, month,
// day, hour, minute, second, weekday/month names and '%%'.
func strftime(format string, t time.Time) string {
	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'Y':
			b.WriteString(t.Format("2006"))
		case 'y':
			b.WriteString(t.Format("06"))
		case 'm':
			b.WriteString(t.Format("01"))
		case 'd':
			b.WriteString(t.Format("02"))
		case 'H':
			b.WriteString(t.Format("15"))
		case 'I':
			b.WriteString(t.Format("03"))
		case 'M':
			b.WriteString(t.Format("04"))
		case 'S':
			b.WriteString(t.Format("05"))
		case 'p':
			b.WriteString(t.Format("PM"))
		case 'j':
			b.WriteString(pad3(t.YearDay()))
		case 'a':
			b.WriteString(t.Format("Mon"))
		case 'A':
			b.WriteString(t.Format("Monday"))
		case 'b', 'h':
			b.WriteString(t.Format("Jan"))
		case 'B':
			b.WriteString(t.Format("January"))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case 'z':
			b.WriteString(t.Format("-0700"))
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case '%':
			b.WriteRune('%')
		default:
			b.WriteRune('%')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

func pad3(n int) string {
	s := "000"
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if len(digits) == 0 {
		return s
	}
	if len(digits) >= 3 {
		return string(digits)
	}
	return s[:3-len(digits)] + string(digits)
}
