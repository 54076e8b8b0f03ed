// Package intent classifies free-text employee questions by keyword matching and extracts
// the parameters each intent needs.
//
// Classification is a pure function of the text. Rules are evaluated top to bottom and the
// first rule whose predicate matches decides the intent, so the order of the rule list is part
// of the contract: "average" is checked before "salary", and "show" + "department" before any
// other mention of a department.
package intent

import (
	"strconv"
	"strings"

	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/models"
)

// Rule pairs a predicate on the normalized query with the extractor run when it matches.
type Rule struct {
	Name    string
	Match   func(query string) bool
	Extract func(query string) (models.ParsedIntent, error)
}

var rules = []Rule{
	{
		Name:    "help",
		Match:   func(q string) bool { return q == "help" },
		Extract: fixed(models.IntentHelp),
	},
	{
		Name:    "exit",
		Match:   func(q string) bool { return q == "exit" },
		Extract: fixed(models.IntentExit),
	},
	{
		Name:    "department-list",
		Match:   func(q string) bool { return strings.Contains(q, "show") && strings.Contains(q, "department") },
		Extract: extractDepartmentList,
	},
	{
		Name:    "manager",
		Match:   func(q string) bool { return strings.Contains(q, "manager") },
		Extract: extractManager,
	},
	{
		Name:    "hire-date",
		Match:   func(q string) bool { return strings.Contains(q, "hired") },
		Extract: extractHireDate,
	},
	{
		Name:    "average-salary",
		Match:   func(q string) bool { return strings.Contains(q, "average") },
		Extract: extractAverageSalary,
	},
	{
		Name:    "salary-filter",
		Match:   func(q string) bool { return strings.Contains(q, "salary") },
		Extract: extractSalaryFilter,
	},
}

// Rules returns a copy of the ordered rule list.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize trims and lowercases a raw query.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Classify returns the intent and parameters for text. When extraction fails the returned
// ParsedIntent still names the intent that was attempted and the error is a *StandardError
// carrying the user-facing message. Unmatched text yields IntentUnknown and no error.
func Classify(text string) (models.ParsedIntent, error) {
	return ClassifyWith(rules, text)
}

// ClassifyWith evaluates an explicit rule list with first-match-wins semantics.
func ClassifyWith(ruleList []Rule, text string) (models.ParsedIntent, error) {
	q := Normalize(text)
	for _, r := range ruleList {
		if r.Match(q) {
			return r.Extract(q)
		}
	}
	return models.ParsedIntent{Intent: models.IntentUnknown}, nil
}

// MatchingRule names the first rule whose predicate accepts text, or "" if none does.
func MatchingRule(text string) string {
	q := Normalize(text)
	for _, r := range rules {
		if r.Match(q) {
			return r.Name
		}
	}
	return ""
}

func fixed(i models.Intent) func(string) (models.ParsedIntent, error) {
	return func(string) (models.ParsedIntent, error) {
		return models.ParsedIntent{Intent: i}, nil
	}
}

func extractDepartmentList(q string) (models.ParsedIntent, error) {
	parsed := models.ParsedIntent{Intent: models.IntentDepartmentList}

	dept, pos := legacyTokenBeforeKeyword(q, "department")
	switch {
	case pos < 0:
		return parsed, apperrors.NewMissingParameterError("department", apperrors.MsgInvalidDepartment)
	case pos == 0:
		return parsed, apperrors.NewMissingParameterError("department", apperrors.MsgMissingDepartment)
	}

	parsed.Params.Department = dept
	return parsed, nil
}

func extractManager(q string) (models.ParsedIntent, error) {
	if strings.Contains(q, "list all") {
		return models.ParsedIntent{Intent: models.IntentManagerList}, nil
	}

	parsed := models.ParsedIntent{Intent: models.IntentManagerOfDepartment}
	dept, ok := legacyLastTokenBefore(q, "manager")
	if !ok {
		return parsed, apperrors.NewMissingParameterError("department", apperrors.MsgMissingDepartment)
	}
	parsed.Params.Department = dept
	return parsed, nil
}

func extractHireDate(q string) (models.ParsedIntent, error) {
	var (
		cmp      models.Comparison
		dateText string
		ok       bool
	)
	// Any "after" selects the greater-than branch, even when the phrase is "hired before".
	switch {
	case strings.Contains(q, "after"):
		cmp = models.ComparisonGreater
		dateText, ok = legacyTextAfter(q, "hired after")
	case strings.Contains(q, "before"):
		cmp = models.ComparisonLess
		dateText, ok = legacyTextAfter(q, "hired before")
	}
	if !ok {
		// "hired" without a supported phrasing.
		return models.ParsedIntent{Intent: models.IntentUnknown}, nil
	}

	parsed := models.ParsedIntent{
		Intent: models.IntentHireDateFilter,
		Params: models.Params{Comparison: cmp, DateText: dateText},
	}

	date, err := ParseDate(dateText)
	if err != nil {
		return parsed, apperrors.NewInvalidDateError(dateText, err)
	}
	parsed.Params.Date = date.Format(DateLayout)
	return parsed, nil
}

func extractAverageSalary(q string) (models.ParsedIntent, error) {
	if !strings.Contains(q, "department") {
		return models.ParsedIntent{Intent: models.IntentAverageSalaryOverall}, nil
	}

	parsed := models.ParsedIntent{Intent: models.IntentAverageSalaryByDepartment}
	dept, ok := legacyLastTokenBefore(q, "department")
	if !ok {
		return parsed, apperrors.NewMissingParameterError("department", apperrors.MsgInvalidDepartment)
	}
	parsed.Params.Department = dept
	return parsed, nil
}

func extractSalaryFilter(q string) (models.ParsedIntent, error) {
	cmp := models.ComparisonLess
	if strings.Contains(q, "above") || strings.Contains(q, "over") {
		cmp = models.ComparisonGreater
	}
	parsed := models.ParsedIntent{
		Intent: models.IntentSalaryFilter,
		Params: models.Params{Comparison: cmp},
	}

	digits := legacyDigits(q)
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return parsed, apperrors.NewInvalidAmountError(digits, err)
	}
	parsed.Params.Amount = amount
	return parsed, nil
}
