package intent

import "strings"

// The helpers below implement the legacy token extraction scheme: locate a keyword and take
// the adjacent whitespace-separated token. They assume single-token department names and are
// kept apart from the rule list so a structured parser can replace them without touching
// classification order.

// legacyTokenBeforeKeyword returns the token immediately preceding the standalone token keyword.
// position is -1 when keyword is not a token of query and 0 when it is the first token.
func legacyTokenBeforeKeyword(query, keyword string) (token string, position int) {
	words := strings.Fields(query)
	for i, w := range words {
		if w != keyword {
			continue
		}
		if i == 0 {
			return "", 0
		}
		return words[i-1], i
	}
	return "", -1
}

// legacyLastTokenBefore returns the last token of the text preceding the first occurrence of
// keyword. ok is false when that text holds no token.
func legacyLastTokenBefore(query, keyword string) (token string, ok bool) {
	idx := strings.Index(query, keyword)
	if idx < 0 {
		return "", false
	}
	words := strings.Fields(query[:idx])
	if len(words) == 0 {
		return "", false
	}
	return words[len(words)-1], true
}

// legacyTextAfter returns the trimmed text following the first occurrence of phrase.
func legacyTextAfter(query, phrase string) (text string, ok bool) {
	idx := strings.Index(query, phrase)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(query[idx+len(phrase):]), true
}

// legacyDigits concatenates every ASCII digit found anywhere in query.
func legacyDigits(query string) string {
	var b strings.Builder
	for _, r := range query {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
