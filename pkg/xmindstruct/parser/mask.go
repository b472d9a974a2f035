package parser

import (
	"regexp"
	"strings"
)

// emailMask replaces everything after the first four characters of a local part.
const emailMask = "****"

// phoneSep is the class of characters allowed between phone digits.
const phoneSep = `\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}\-().`

var (
	emailRE = regexp.MustCompile(`([a-zA-Z0-9._%+-]{4})[a-zA-Z0-9._%+-]*@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	phoneRE = regexp.MustCompile(`(\+\d{1,3})?([` + phoneSep + `]*\d[\d` + phoneSep + `]{6,}\d)`)
)

const (
	// minPhoneDigits is the digit count below which a match is left alone.
	minPhoneDigits = 7
	// phoneKeepDigits digits after the country code stay visible.
	phoneKeepDigits = 3
)

// MaskEmail keeps the first four characters of every email local part and
// the domain, masking the rest of the local part.
func MaskEmail(text string) string {
	if text == "" {
		return text
	}
	return emailRE.ReplaceAllString(text, "${1}"+emailMask+"@${2}")
}

// MaskPhone masks phone-like digit runs. Country code digits and the next
// three digits are kept, the remaining digits become '*'. Separators and a
// leading '+' keep their positions.
func MaskPhone(text string) string {
	if text == "" {
		return text
	}
	matches := phoneRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		var cc string
		if m[2] >= 0 {
			cc = text[m[2]:m[3]]
		}
		b.WriteString(maskPhoneMatch(cc, text[m[4]:m[5]]))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// MaskSensitive masks emails, then phone numbers.
func MaskSensitive(text string) string {
	return MaskPhone(MaskEmail(text))
}

func maskPhoneMatch(cc, number string) string {
	if countDigits(number) < minPhoneDigits {
		return cc + number
	}
	keep := countDigits(cc) + phoneKeepDigits
	var b strings.Builder
	seen := 0
	for _, r := range cc + number {
		if !isDigit(r) {
			b.WriteRune(r)
			continue
		}
		if seen < keep {
			b.WriteRune(r)
		} else {
			b.WriteByte('*')
		}
		seen++
	}
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if isDigit(r) {
			n++
		}
	}
	return n
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
