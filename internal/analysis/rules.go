// FILE: internal/analysis/rules.go
//
// Report-side processing of rule results: the fixed filter set, the counter
// strip, and the display ordering. Ordering is stable so rules that compare
// equal keep the backend order.
package analysis

import (
	"sort"

	"procurement-dashboard-be/internal/dto"
)

type RuleFilter string

const (
	FilterAll        RuleFilter = "all"
	FilterViolations RuleFilter = "violations"
	FilterRisks      RuleFilter = "risks"
	FilterOK         RuleFilter = "ok"
)

func ValidFilter(f RuleFilter) bool {
	switch f {
	case FilterAll, FilterViolations, FilterRisks, FilterOK:
		return true
	}
	return false
}

// RuleStats is the counter strip above the report list.
type RuleStats struct {
	Total      int `json:"total"`
	Violations int `json:"violations"`
	Risks      int `json:"risks"`
	OK         int `json:"ok"`
}

func Stats(rules []dto.RuleResult) RuleStats {
	s := RuleStats{Total: len(rules)}
	for _, r := range rules {
		if r.Status != dto.RuleTriggered {
			s.OK++
			continue
		}
		if r.RiskType == dto.RiskViolation {
			s.Violations++
		} else {
			s.Risks++
		}
	}
	return s
}

// Filter keeps the rules matching one of the four fixed filters. The risks
// filter covers every triggered non-violation kind.
func Filter(rules []dto.RuleResult, f RuleFilter) []dto.RuleResult {
	if f == FilterAll {
		return rules
	}
	out := make([]dto.RuleResult, 0, len(rules))
	for _, r := range rules {
		switch f {
		case FilterViolations:
			if r.Status == dto.RuleTriggered && r.RiskType == dto.RiskViolation {
				out = append(out, r)
			}
		case FilterRisks:
			if r.Status == dto.RuleTriggered && r.RiskType != dto.RiskViolation {
				out = append(out, r)
			}
		case FilterOK:
			if r.Status != dto.RuleTriggered {
				out = append(out, r)
			}
		}
	}
	return out
}

// violations first, then risk-grade findings, informational last
func riskRank(t dto.RiskType) int {
	switch t {
	case dto.RiskViolation:
		return 0
	case dto.RiskRisk, dto.RiskInconsistency:
		return 1
	case dto.RiskInfo:
		return 2
	}
	return 3
}

func severityRank(s dto.Severity) int {
	switch s {
	case dto.SeverityHigh:
		return 0
	case dto.SeverityMedium:
		return 1
	case dto.SeverityLow:
		return 2
	}
	return 3
}

// Sort orders rules for display: triggered before ok, then by risk kind,
// then by severity. Stable.
func Sort(rules []dto.RuleResult) []dto.RuleResult {
	out := make([]dto.RuleResult, len(rules))
	copy(out, rules)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		at, bt := a.Status == dto.RuleTriggered, b.Status == dto.RuleTriggered
		if at != bt {
			return at
		}
		if !at {
			return false
		}

		if ar, br := riskRank(a.RiskType), riskRank(b.RiskType); ar != br {
			return ar < br
		}
		return severityRank(a.Severity) < severityRank(b.Severity)
	})
	return out
}
