// FILE: internal/dto/analysis_dto.go
package dto

type AnalysisType string

const (
	AnalysisFast AnalysisType = "fast"
	AnalysisFull AnalysisType = "full"
)

type AnalysisStatus string

const (
	StatusQueued    AnalysisStatus = "queued"
	StatusRunning   AnalysisStatus = "running"
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// Terminal reports whether the backend will never move the task further.
func (s AnalysisStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type DispatchProcurementRequest struct {
	PurchaseID   string       `json:"purchase_id" validate:"required"`
	AnalysisType AnalysisType `json:"analysis_type" validate:"required,oneof=fast full"`
}

type DispatchProcurementResponse struct {
	Status       AnalysisStatus `json:"status"`
	PurchaseID   string         `json:"purchase_id"`
	TaskID       string         `json:"task_id"`
	AnalysisID   int            `json:"analysis_id"`
	AnalysisType AnalysisType   `json:"analysis_type"`
}

type RuleStatus string

const (
	RuleOK        RuleStatus = "ok"
	RuleTriggered RuleStatus = "triggered"
)

type RiskType string

const (
	RiskViolation     RiskType = "violation"
	RiskRisk          RiskType = "risk"
	RiskInfo          RiskType = "info"
	RiskInconsistency RiskType = "inconsistency"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type RuleResult struct {
	RuleID      string     `json:"rule_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Status      RuleStatus `json:"status"`
	RiskType    RiskType   `json:"risk_type"`
	Severity    Severity   `json:"severity"`
	LawRefs     []string   `json:"law_refs"`
	Description string     `json:"description"`
}

type RuleResults struct {
	ApplicableRules []RuleResult `json:"applicable_rules"`
}

type AnalysisResult struct {
	ProcurementID   string                 `json:"procurement_id"`
	AnalysisType    string                 `json:"analysis_type"`
	ProcurementHash string                 `json:"procurement_hash"`
	RuleResults     RuleResults            `json:"rule_results"`
	ParsedDocsData  map[string]interface{} `json:"parsed_docs_data"`
	LLM             string                 `json:"llm,omitempty"`
}

type StatusCallback struct {
	Status  string  `json:"status"`
	Details *string `json:"details"`
}

// TaskStatus is the shared shape of GET /api/result/{taskId} and
// GET /api/result/{taskId}/analysis.
type TaskStatus struct {
	PurchaseID     string          `json:"purchase_id,omitempty"`
	TaskID         string          `json:"task_id"`
	State          string          `json:"state"`
	AnalysisID     int             `json:"analysis_id"`
	AnalysisStatus AnalysisStatus  `json:"analysis_status"`
	AnalysisType   AnalysisType    `json:"analysis_type"`
	TokensSpent    int             `json:"tokens_spent"`
	Result         *AnalysisResult `json:"result"`
	Error          *string         `json:"error"`
	Callback       *StatusCallback `json:"callback,omitempty"`
}

// --- Favorites / history DTOs ---

type AnalysisListItem struct {
	ID           int            `json:"id"`
	PurchaseID   string         `json:"purchase_id"`
	TaskID       string         `json:"task_id"`
	Status       AnalysisStatus `json:"status"`
	AnalysisType AnalysisType   `json:"analysis_type"`
	TokensSpent  int            `json:"tokens_spent"`
	CreatedAt    string         `json:"created_at"`
	CompletedAt  *string        `json:"completed_at"`
	IsFavorite   bool           `json:"is_favorite"`
	Title        string         `json:"title,omitempty"`
	NMCK         *float64       `json:"nmck,omitempty"`
	Deadline     *string        `json:"deadline,omitempty"`
}

type AnalysesListResponse struct {
	Items []AnalysisListItem `json:"items"`
}

type AddFavoriteRequest struct {
	AnalysisID int `json:"analysis_id" validate:"required"`
}

type FavoriteResponse struct {
	AnalysisID int    `json:"analysis_id"`
	CreatedAt  string `json:"created_at"`
}
