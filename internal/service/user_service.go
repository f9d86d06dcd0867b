// FILE: internal/service/user_service.go
package service

import (
	"context"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
	"procurement-dashboard-be/internal/querycache"
)

type IUserService interface {
	UpdateProfile(ctx context.Context, token string, req *dto.UpdateUserRequest) (*dto.User, error)
}

type userService struct {
	gw    *gateway.Client
	cache *querycache.Cache
	log   logger.ILogger
}

func NewUserService(gw *gateway.Client, cache *querycache.Cache, log logger.ILogger) IUserService {
	return &userService{gw: gw, cache: cache, log: log}
}

// UpdateProfile saves organization details and replaces the cached profile
// with the backend's response.
func (s *userService) UpdateProfile(ctx context.Context, token string, req *dto.UpdateUserRequest) (*dto.User, error) {
	user, err := s.gw.UpdateMe(ctx, token, req)
	if err != nil {
		return nil, err
	}

	scope := querycache.TokenScope(token)
	s.cache.Set(querycache.Key(scope, querycache.ResourceUser), user)

	s.log.Info("user", "profile updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}
