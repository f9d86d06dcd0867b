// FILE: internal/service/procurement_service.go
package service

import (
	"context"
	"time"

	"procurement-dashboard-be/internal/analysis"
	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
	"procurement-dashboard-be/internal/pkg/mailer"
	"procurement-dashboard-be/internal/poller"
	"procurement-dashboard-be/internal/procurement"
	"procurement-dashboard-be/internal/querycache"
	"procurement-dashboard-be/pkg/rss"
)

// ProcurementView is the full detail-screen payload: sidebar, the active
// section's data, and the analysis banner for the attached task.
type ProcurementView struct {
	PurchaseID string                    `json:"purchase_id"`
	State      procurement.UIState       `json:"state"`
	Sidebar    []procurement.SidebarItem `json:"sidebar"`
	Section    interface{}               `json:"section"`
	Banner     analysis.Banner           `json:"banner"`
	From       string                    `json:"from,omitempty"`
}

// RulesReport is the report screen payload.
type RulesReport struct {
	Banner analysis.Banner     `json:"banner"`
	Filter analysis.RuleFilter `json:"filter"`
	Stats  analysis.RuleStats  `json:"stats"`
	Rules  []dto.RuleResult    `json:"rules"`
}

type IProcurementService interface {
	GetView(ctx context.Context, token, purchaseID string, state procurement.UIState, taskID, from string) (*ProcurementView, error)
	Dispatch(ctx context.Context, token string, user *dto.User, req *dto.DispatchProcurementRequest) (*dto.DispatchProcurementResponse, error)
	GetRules(ctx context.Context, token, taskID string, filter analysis.RuleFilter) (*RulesReport, error)
	GetRSSEvents(ctx context.Context, purchaseID string) ([]rss.Event, error)
	DownloadSummaryPDF(ctx context.Context, token, taskID string) ([]byte, error)
	TaskStatus(ctx context.Context, token, taskID string) (*dto.TaskStatus, error)
}

type procurementService struct {
	gw      *gateway.Client
	cache   *querycache.Cache
	watches *poller.Manager
	mail    mailer.IEmailService
	notify  bool
	log     logger.ILogger
}

func NewProcurementService(gw *gateway.Client, cache *querycache.Cache, watches *poller.Manager, mail mailer.IEmailService, notify bool, log logger.ILogger) IProcurementService {
	return &procurementService{
		gw:      gw,
		cache:   cache,
		watches: watches,
		mail:    mail,
		notify:  notify,
		log:     log,
	}
}

// body resolves the procurement snapshot, cached publicly: the backend
// serves the same immutable snapshot to everyone.
func (s *procurementService) body(ctx context.Context, token, purchaseID string) (*dto.ProcurementBody, error) {
	key := querycache.Key(querycache.ScopePublic, querycache.ResourceBody, purchaseID)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.ProcurementBody), nil
	}

	body, err := s.gw.GetProcurementBody(ctx, token, purchaseID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, body)
	return body, nil
}

func (s *procurementService) GetView(ctx context.Context, token, purchaseID string, state procurement.UIState, taskID, from string) (*ProcurementView, error) {
	body, err := s.body(ctx, token, purchaseID)
	if err != nil {
		return nil, err
	}

	var banner analysis.Banner
	if taskID != "" {
		status, err := s.TaskStatus(ctx, token, taskID)
		if err != nil {
			banner = analysis.ResolveBanner(nil, true)
		} else {
			banner = analysis.ResolveBanner(status, true)
		}
	} else {
		banner = analysis.ResolveBanner(nil, false)
	}

	view := &ProcurementView{
		PurchaseID: purchaseID,
		State:      state,
		Sidebar:    procurement.Sidebar(body, state, banner),
		Banner:     banner,
		From:       from,
	}

	if state.ActiveSection == procurement.SectionRSS {
		events, err := s.GetRSSEvents(ctx, purchaseID)
		if err != nil {
			// The portal feed is best-effort; the section renders empty.
			s.log.Warn("procurement", "rss feed unavailable", map[string]interface{}{
				"purchase_id": purchaseID,
				"error":       err.Error(),
			})
			events = []rss.Event{}
		}
		view.Section = events
	} else {
		section, err := procurement.BuildSection(state.ActiveSection, body, state, time.Now())
		if err != nil {
			return nil, err
		}
		view.Section = section
	}

	return view, nil
}

func (s *procurementService) Dispatch(ctx context.Context, token string, user *dto.User, req *dto.DispatchProcurementRequest) (*dto.DispatchProcurementResponse, error) {
	res, err := s.gw.DispatchProcurement(ctx, token, req)
	if err != nil {
		return nil, err
	}

	scope := querycache.TokenScope(token)
	s.cache.Invalidate(scope, querycache.ResourceAnalyses)
	s.cache.Invalidate(scope, querycache.ResourceUser)

	s.log.Info("procurement", "analysis dispatched", map[string]interface{}{
		"purchase_id":   res.PurchaseID,
		"task_id":       res.TaskID,
		"analysis_type": string(res.AnalysisType),
	})

	s.watchTask(token, res.TaskID, user)
	return res, nil
}

// watchTask polls the dispatched task until it settles, keeping the cached
// status fresh and firing the completion notification.
func (s *procurementService) watchTask(token, taskID string, user *dto.User) {
	scope := querycache.TokenScope(token)
	statusKey := querycache.Key(scope, querycache.ResourceTaskResult, taskID)

	fetch := func(ctx context.Context) (*dto.TaskStatus, error) {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return s.gw.GetTaskResult(ctx, token, taskID)
	}

	s.watches.Watch(context.Background(), taskID, fetch, poller.Hooks{
		OnUpdate: func(status *dto.TaskStatus) {
			s.cache.Set(statusKey, status)
		},
		OnTerminal: func(status *dto.TaskStatus) {
			s.cache.Invalidate(scope, querycache.ResourceAnalyses)
			s.cache.Invalidate(scope, querycache.ResourceUser)
			s.notifyOutcome(status, user)
		},
	})
}

func (s *procurementService) notifyOutcome(status *dto.TaskStatus, user *dto.User) {
	if !s.notify || s.mail == nil || user == nil || user.Email == "" {
		return
	}

	var err error
	switch status.AnalysisStatus {
	case dto.StatusCompleted:
		err = s.mail.SendAnalysisCompleted(user.Email, status.PurchaseID, status.TaskID)
	case dto.StatusFailed:
		reason := ""
		if status.Error != nil {
			reason = *status.Error
		}
		err = s.mail.SendAnalysisFailed(user.Email, status.PurchaseID, reason)
	}
	if err != nil {
		s.log.Error("procurement", "outcome notification failed", map[string]interface{}{
			"task_id": status.TaskID,
			"error":   err.Error(),
		})
	}
}

func (s *procurementService) TaskStatus(ctx context.Context, token, taskID string) (*dto.TaskStatus, error) {
	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourceTaskResult, taskID)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.TaskStatus), nil
	}

	status, err := s.gw.GetTaskResult(ctx, token, taskID)
	if err != nil {
		return nil, err
	}
	// Only settled statuses are safe to cache; live ones change under us.
	if status.AnalysisStatus.Terminal() {
		s.cache.Set(key, status)
	}
	return status, nil
}

func (s *procurementService) GetRules(ctx context.Context, token, taskID string, filter analysis.RuleFilter) (*RulesReport, error) {
	if !analysis.ValidFilter(filter) {
		filter = analysis.FilterAll
	}

	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourceTaskAnalysis, taskID)

	var status *dto.TaskStatus
	if v, ok := s.cache.Get(key); ok {
		status = v.(*dto.TaskStatus)
	} else {
		var err error
		status, err = s.gw.GetTaskAnalysis(ctx, token, taskID)
		if err != nil {
			return nil, err
		}
		if status.AnalysisStatus.Terminal() {
			s.cache.Set(key, status)
		}
	}

	report := &RulesReport{
		Banner: analysis.ResolveBanner(status, true),
		Filter: filter,
	}
	if report.Banner.State != analysis.BannerReport {
		return report, nil
	}

	rules := status.Result.RuleResults.ApplicableRules
	report.Stats = analysis.Stats(rules)
	report.Rules = analysis.Sort(analysis.Filter(rules, filter))
	return report, nil
}

func (s *procurementService) GetRSSEvents(ctx context.Context, purchaseID string) ([]rss.Event, error) {
	key := querycache.Key(querycache.ScopePublic, querycache.ResourceRSS, purchaseID)
	if v, ok := s.cache.Get(key); ok {
		return v.([]rss.Event), nil
	}

	data, err := s.gw.FetchRSS(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	events, err := rss.Parse(data)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, events)
	return events, nil
}

func (s *procurementService) DownloadSummaryPDF(ctx context.Context, token, taskID string) ([]byte, error) {
	return s.gw.DownloadAnalysisSummaryPDF(ctx, token, taskID)
}
