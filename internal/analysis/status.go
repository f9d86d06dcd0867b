// FILE: internal/analysis/status.go
//
// Report banner state machine. A task that reached a terminal status is
// never polled again, including "completed" with a missing result payload.
package analysis

import "procurement-dashboard-be/internal/dto"

type BannerState string

const (
	BannerNotStarted BannerState = "not_started"
	BannerLoading    BannerState = "loading"
	BannerQueued     BannerState = "queued"
	BannerRunning    BannerState = "running"
	BannerFailed     BannerState = "failed"
	BannerIncomplete BannerState = "incomplete"
	BannerReport     BannerState = "report"
)

// IncompleteMessage is shown for a completed task without a result payload.
const IncompleteMessage = "Анализ не завершён"

// FailedFallback is shown when the backend reports no failure detail.
const FailedFallback = "Произошла ошибка при анализе закупки"

type Banner struct {
	State   BannerState `json:"state"`
	Message string      `json:"message,omitempty"`
	Details string      `json:"details,omitempty"`
	Polling bool        `json:"polling"`
}

// withCallback overlays backend-supplied progress wording onto an
// in-flight banner; the defaults stay when the callback is empty.
func (b Banner) withCallback(cb *dto.StatusCallback) Banner {
	if cb == nil {
		return b
	}
	if cb.Status != "" {
		b.Message = cb.Status
	}
	if cb.Details != nil && *cb.Details != "" {
		b.Details = *cb.Details
	}
	return b
}

// ResolveBanner maps the last known task status to the banner shown above
// the report. A nil status means no task has been dispatched for this view;
// loading covers a dispatched task whose first poll has not landed yet.
func ResolveBanner(status *dto.TaskStatus, dispatched bool) Banner {
	if status == nil {
		if dispatched {
			return Banner{State: BannerLoading, Polling: true}
		}
		return Banner{State: BannerNotStarted}
	}

	switch status.AnalysisStatus {
	case dto.StatusQueued:
		return Banner{State: BannerQueued, Message: "Задача в очереди", Polling: true}.withCallback(status.Callback)
	case dto.StatusRunning:
		return Banner{State: BannerRunning, Message: "Анализ выполняется", Polling: true}.withCallback(status.Callback)
	case dto.StatusFailed:
		msg := FailedFallback
		if status.Error != nil && *status.Error != "" {
			msg = *status.Error
		}
		return Banner{State: BannerFailed, Message: msg}
	case dto.StatusCompleted:
		if status.Result == nil {
			return Banner{State: BannerIncomplete, Message: IncompleteMessage}
		}
		return Banner{State: BannerReport}
	}

	// Unknown status keeps polling rather than wedging the screen.
	return Banner{State: BannerLoading, Polling: true}
}
