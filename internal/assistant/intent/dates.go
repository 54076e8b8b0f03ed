package intent

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical form of every extracted date.
const DateLayout = "2006-01-02"

var errEmptyDate = errors.New("empty date text")

// Common human layouts tried before the generic parser. Month names match case-insensitively.
var humanDateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate reads a calendar date from free text such as "2021-01-01" or "March 1 2020".
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimRight(strings.TrimSpace(text), "?!.")
	if text == "" {
		return time.Time{}, errEmptyDate
	}

	for _, layout := range humanDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
