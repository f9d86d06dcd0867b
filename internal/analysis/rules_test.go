package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-dashboard-be/internal/dto"
)

func rule(id string, status dto.RuleStatus, risk dto.RiskType, sev dto.Severity) dto.RuleResult {
	return dto.RuleResult{RuleID: id, Status: status, RiskType: risk, Severity: sev}
}

var sample = []dto.RuleResult{
	rule("ok-1", dto.RuleOK, "", ""),
	rule("info-low", dto.RuleTriggered, dto.RiskInfo, dto.SeverityLow),
	rule("violation-med", dto.RuleTriggered, dto.RiskViolation, dto.SeverityMedium),
	rule("risk-high", dto.RuleTriggered, dto.RiskRisk, dto.SeverityHigh),
	rule("violation-high", dto.RuleTriggered, dto.RiskViolation, dto.SeverityHigh),
	rule("inconsistency-high", dto.RuleTriggered, dto.RiskInconsistency, dto.SeverityHigh),
	rule("ok-2", dto.RuleOK, "", ""),
}

func ids(rules []dto.RuleResult) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.RuleID)
	}
	return out
}

func TestSortOrdering(t *testing.T) {
	sorted := Sort(sample)

	assert.Equal(t, []string{
		"violation-high",
		"violation-med",
		"risk-high",
		"inconsistency-high", // same rank as risk, backend order preserved
		"info-low",
		"ok-1",
		"ok-2",
	}, ids(sorted))

	// input untouched
	assert.Equal(t, "ok-1", sample[0].RuleID)
}

func TestFilters(t *testing.T) {
	assert.Len(t, Filter(sample, FilterAll), len(sample))

	assert.ElementsMatch(t,
		[]string{"violation-med", "violation-high"},
		ids(Filter(sample, FilterViolations)))

	assert.ElementsMatch(t,
		[]string{"info-low", "risk-high", "inconsistency-high"},
		ids(Filter(sample, FilterRisks)))

	assert.ElementsMatch(t,
		[]string{"ok-1", "ok-2"},
		ids(Filter(sample, FilterOK)))
}

func TestStats(t *testing.T) {
	s := Stats(sample)
	assert.Equal(t, RuleStats{Total: 7, Violations: 2, Risks: 3, OK: 2}, s)
}

func TestValidFilter(t *testing.T) {
	assert.True(t, ValidFilter(FilterRisks))
	assert.False(t, ValidFilter(RuleFilter("hints")))
}

func TestResolveBanner(t *testing.T) {
	assert.Equal(t, Banner{State: BannerNotStarted}, ResolveBanner(nil, false))
	assert.Equal(t, Banner{State: BannerLoading, Polling: true}, ResolveBanner(nil, true))

	running := &dto.TaskStatus{AnalysisStatus: dto.StatusRunning}
	assert.True(t, ResolveBanner(running, true).Polling)
	assert.Equal(t, "Анализ выполняется", ResolveBanner(running, true).Message)

	details := "парсинг документации: 3 из 12"
	withCallback := &dto.TaskStatus{
		AnalysisStatus: dto.StatusRunning,
		Callback:       &dto.StatusCallback{Status: "Идёт проверка документов", Details: &details},
	}
	cb := ResolveBanner(withCallback, true)
	assert.Equal(t, "Идёт проверка документов", cb.Message)
	assert.Equal(t, details, cb.Details)
	assert.True(t, cb.Polling)

	queuedCallback := &dto.TaskStatus{
		AnalysisStatus: dto.StatusQueued,
		Callback:       &dto.StatusCallback{Status: "Ожидание свободного воркера"},
	}
	assert.Equal(t, "Ожидание свободного воркера", ResolveBanner(queuedCallback, true).Message)

	errMsg := "ошибка парсинга документации"
	failed := &dto.TaskStatus{AnalysisStatus: dto.StatusFailed, Error: &errMsg}
	b := ResolveBanner(failed, true)
	assert.Equal(t, BannerFailed, b.State)
	assert.Equal(t, errMsg, b.Message)
	assert.False(t, b.Polling)

	failedBare := &dto.TaskStatus{AnalysisStatus: dto.StatusFailed}
	assert.Equal(t, FailedFallback, ResolveBanner(failedBare, true).Message)

	completedEmpty := &dto.TaskStatus{AnalysisStatus: dto.StatusCompleted}
	b = ResolveBanner(completedEmpty, true)
	assert.Equal(t, BannerIncomplete, b.State)
	assert.Equal(t, IncompleteMessage, b.Message)

	completed := &dto.TaskStatus{
		AnalysisStatus: dto.StatusCompleted,
		Result:         &dto.AnalysisResult{},
	}
	require.Equal(t, BannerReport, ResolveBanner(completed, true).State)
}
