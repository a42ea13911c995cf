package formula

import (
	"regexp"
	"strings"
)

// ReplaceWholeWord substitutes every whole-word occurrence of name inside the
// formula. Word boundaries keep a counter name that is a substring of another
// ("A" inside "AB") from being partially replaced.
func ReplaceWholeWord(formula, name, replacement string) string {
	re, err := wordPattern(name)
	if err != nil {
		return formula
	}
	return re.ReplaceAllLiteralString(formula, replacement)
}

// ContainsWholeWord reports whether name occurs in the formula as a whole word.
func ContainsWholeWord(formula, name string) bool {
	re, err := wordPattern(name)
	if err != nil {
		return false
	}
	return re.MatchString(formula)
}

// StripWhitespace removes every whitespace rune, the canonical form the
// derived formula variants are stored in.
func StripWhitespace(formula string) string {
	return strings.Join(strings.Fields(formula), "")
}

func wordPattern(name string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
}
