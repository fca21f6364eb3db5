package script

import (
	"strings"
	"unicode"
)

// Kebab converts s to kebab-case: words are split on non-alphanumerics and
// lower-to-upper case transitions, lowercased, and joined with "-".
//
//	Kebab("fooBar baz") == "foo-bar-baz"
//	Kebab("@scope/My_Pkg") == "scope-my-pkg"
func Kebab(s string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if i > 0 && unicode.IsUpper(r) && len(cur) > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()
	return strings.Join(words, "-")
}
