package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxSlugBase = 48

// Slugify lowercases the title, collapses every non-alphanumeric run into a
// single hyphen, trims leading/trailing hyphens and truncates the result.
// Cyrillic and other letters survive as-is; URL encoding is the router's
// problem, uniqueness is the caller's.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > maxSlugBase {
		cut := maxSlugBase
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.Trim(s[:cut], "-")
	}
	if s == "" {
		s = "list"
	}
	return s
}

// SlugWithToken appends a short random disambiguating suffix. Collisions are
// still possible; callers retry with a fresh token.
func SlugWithToken(title string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return Slugify(title) + "-" + token
}
