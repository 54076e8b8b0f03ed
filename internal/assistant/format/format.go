// Package format renders query results as the plain-text answers shown to users.
//
// Every function is pure. Lines are joined with "\n" and answers carry no leading or trailing
// blank lines.
package format

import (
	"database/sql"
	"math"
	"reflect"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "January 02, 2006"
	zeroCurrency      = "$0.00"
)

// Currency renders a numeric value as "$1,234,567.50". Integer and float kinds, pointers to
// them and valid sql.Null values are accepted; anything else renders as "$0.00".
func Currency(v any) string {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return zeroCurrency
	}
	// Printers are stateful, one per call.
	return "$" + message.NewPrinter(language.English).Sprintf("%.2f", f)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case sql.NullFloat64:
		return n.Float64, n.Valid
	case sql.NullInt64:
		return float64(n.Int64), n.Valid
	case sql.NullInt32:
		return float64(n.Int32), n.Valid
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// Date renders "2021-01-05" as "January 05, 2021". Text that is not a strict ISO date is
// returned unchanged.
func Date(s string) string {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Error prefixes a message for display as a failure.
func Error(msg string) string {
	return "Error: " + msg
}
