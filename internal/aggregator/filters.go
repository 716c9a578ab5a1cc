package aggregator

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/selivandex/news-sentiment/pkg/models"
)

// normalizeTitle lower-cases and keeps only letters and digits separated by single spaces
func normalizeTitle(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "www.")
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func normalizeTrusted(sources []string) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// hostOf returns the lower-case host without a www. prefix, or "" if unparseable
func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// matchesDomain reports whether host is one of domains or a subdomain of one
func matchesDomain(host string, domains []string) bool {
	if host == "" {
		return false
	}
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func (a *Aggregator) isTrusted(article models.Article) bool {
	source := strings.ToLower(strings.TrimSpace(article.Source))
	host := hostOf(article.URL)
	for _, t := range a.trusted {
		if source == t {
			return true
		}
		if matchesDomain(host, []string{t}) {
			return true
		}
	}
	return false
}

// mentionsAny reports whether text contains any keyword as a whole word, case-insensitively.
// Keywords must already be lower case.
func mentionsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && containsWord(lower, kw) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for offset := 0; offset <= len(text)-len(word); {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		if !isWordByteAt(text, start-1) && !isWordByteAt(text, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordByteAt(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	c := text[i]
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

// isMostlyLatin rejects titles where more than 30% of letters are outside the Latin script
func isMostlyLatin(title string) bool {
	letters, nonLatin := 0, 0
	for _, r := range title {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if !unicode.Is(unicode.Latin, r) {
			nonLatin++
		}
	}
	if letters == 0 {
		return true
	}
	return nonLatin*10 <= letters*3
}
