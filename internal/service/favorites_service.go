// FILE: internal/service/favorites_service.go
package service

import (
	"context"
	"strings"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
	"procurement-dashboard-be/internal/querycache"
)

type IFavoritesService interface {
	ListAnalyses(ctx context.Context, token string, statuses []dto.AnalysisStatus, favoritesOnly bool) (*dto.AnalysesListResponse, error)
	AddFavorite(ctx context.Context, token string, analysisID int) (*dto.FavoriteResponse, error)
	RemoveFavorite(ctx context.Context, token string, analysisID int) error
}

type favoritesService struct {
	gw    *gateway.Client
	cache *querycache.Cache
	log   logger.ILogger
}

func NewFavoritesService(gw *gateway.Client, cache *querycache.Cache, log logger.ILogger) IFavoritesService {
	return &favoritesService{gw: gw, cache: cache, log: log}
}

func (s *favoritesService) ListAnalyses(ctx context.Context, token string, statuses []dto.AnalysisStatus, favoritesOnly bool) (*dto.AnalysesListResponse, error) {
	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourceAnalyses, statusesKey(statuses))

	var res *dto.AnalysesListResponse
	if v, ok := s.cache.Get(key); ok {
		res = v.(*dto.AnalysesListResponse)
	} else {
		var err error
		res, err = s.gw.ListAnalyses(ctx, token, statuses)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, res)
	}

	if !favoritesOnly {
		return res, nil
	}

	filtered := &dto.AnalysesListResponse{Items: make([]dto.AnalysisListItem, 0, len(res.Items))}
	for _, item := range res.Items {
		if item.IsFavorite {
			filtered.Items = append(filtered.Items, item)
		}
	}
	return filtered, nil
}

func statusesKey(statuses []dto.AnalysisStatus) string {
	if len(statuses) == 0 {
		return "all"
	}
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}

func (s *favoritesService) AddFavorite(ctx context.Context, token string, analysisID int) (*dto.FavoriteResponse, error) {
	res, err := s.gw.AddFavorite(ctx, token, &dto.AddFavoriteRequest{AnalysisID: analysisID})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(querycache.TokenScope(token), querycache.ResourceAnalyses)
	s.log.Info("favorites", "favorite added", map[string]interface{}{
		"analysis_id": analysisID,
	})
	return res, nil
}

func (s *favoritesService) RemoveFavorite(ctx context.Context, token string, analysisID int) error {
	if err := s.gw.RemoveFavorite(ctx, token, analysisID); err != nil {
		return err
	}

	s.cache.Invalidate(querycache.TokenScope(token), querycache.ResourceAnalyses)
	s.log.Info("favorites", "favorite removed", map[string]interface{}{
		"analysis_id": analysisID,
	})
	return nil
}
