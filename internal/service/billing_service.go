// FILE: internal/service/billing_service.go
package service

import (
	"context"
	"strconv"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
	"procurement-dashboard-be/internal/querycache"
)

type IBillingService interface {
	ListTariffs(ctx context.Context, token string) (*dto.TariffsListResponse, error)
	CurrentTariff(ctx context.Context, token string) (*dto.CurrentTariffResponse, error)
	ListPayments(ctx context.Context, token string) (*dto.PaymentsListResponse, error)
	CreatePayment(ctx context.Context, token string, req *dto.CreatePaymentRequest) (*dto.Payment, error)
	ListTransactions(ctx context.Context, token string, limit int) (*dto.TokenTransactionsResponse, error)
}

type billingService struct {
	gw    *gateway.Client
	cache *querycache.Cache
	log   logger.ILogger
}

func NewBillingService(gw *gateway.Client, cache *querycache.Cache, log logger.ILogger) IBillingService {
	return &billingService{gw: gw, cache: cache, log: log}
}

// Tariff catalog is the same for everyone, so it is cached publicly.
func (s *billingService) ListTariffs(ctx context.Context, token string) (*dto.TariffsListResponse, error) {
	key := querycache.Key(querycache.ScopePublic, querycache.ResourceTariffs)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.TariffsListResponse), nil
	}

	res, err := s.gw.ListTariffs(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, res)
	return res, nil
}

func (s *billingService) CurrentTariff(ctx context.Context, token string) (*dto.CurrentTariffResponse, error) {
	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourceCurrentTariff)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.CurrentTariffResponse), nil
	}

	res, err := s.gw.GetCurrentTariff(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, res)
	return res, nil
}

func (s *billingService) ListPayments(ctx context.Context, token string) (*dto.PaymentsListResponse, error) {
	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourcePayments)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.PaymentsListResponse), nil
	}

	res, err := s.gw.ListPayments(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, res)
	return res, nil
}

// CreatePayment invalidates everything a completed top-up can change:
// payment history, the token balance on the profile, and the tariff view.
func (s *billingService) CreatePayment(ctx context.Context, token string, req *dto.CreatePaymentRequest) (*dto.Payment, error) {
	res, err := s.gw.CreatePayment(ctx, token, req)
	if err != nil {
		return nil, err
	}

	scope := querycache.TokenScope(token)
	s.cache.Invalidate(scope, querycache.ResourcePayments)
	s.cache.Invalidate(scope, querycache.ResourceUser)
	s.cache.Invalidate(scope, querycache.ResourceCurrentTariff)
	s.cache.Invalidate(scope, querycache.ResourceTransactions)

	s.log.Info("billing", "payment created", map[string]interface{}{
		"payment_id":    res.ID,
		"tokens_amount": res.TokensAmount,
	})
	return res, nil
}

func (s *billingService) ListTransactions(ctx context.Context, token string, limit int) (*dto.TokenTransactionsResponse, error) {
	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourceTransactions, strconv.Itoa(limit))
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.TokenTransactionsResponse), nil
	}

	res, err := s.gw.ListTokenTransactions(ctx, token, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, res)
	return res, nil
}
