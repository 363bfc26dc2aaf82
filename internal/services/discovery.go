package services

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/cache"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

// DiscoveryService serves the public browse surface. Every query here
// is filtered to PUBLIC plans; PRIVATE and SHARED plans never appear
// in discovery regardless of who is asking.
type DiscoveryService interface {
	ListPublic(ctx context.Context, req types.PageRequest) (*types.Page[*types.LearningPlan], error)
	Search(ctx context.Context, query string, req types.PageRequest) (*types.Page[*types.LearningPlan], error)
	ListPopular(ctx context.Context, req types.PageRequest) (*types.Page[*types.LearningPlan], error)
	ListRecent(ctx context.Context, req types.PageRequest) (*types.Page[*types.LearningPlan], error)
}

type discoveryService struct {
	db       *gorm.DB
	log      *logger.Logger
	planRepo repos.LearningPlanRepo
	cache    *cache.DiscoveryCache
	loads    singleflight.Group
}

// NewDiscoveryService wires the browse queries. cache may be nil, in
// which case every request hits the database.
func NewDiscoveryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	planRepo repos.LearningPlanRepo,
	discoveryCache *cache.DiscoveryCache,
) DiscoveryService {
	return &discoveryService{
		db:       db,
		log:      baseLog.With("service", "DiscoveryService"),
		planRepo: planRepo,
		cache:    discoveryCache,
	}
}

func (s *discoveryService) ListPublic(ctx context.Context, req types.PageRequest) (*types.Page[*types.LearningPlan], error) {
	plans, total, err := s.planRepo.ListPublic(ctx, nil, req)
	if err != nil {
		return nil, err
	}
	return types.NewPage(plans, req, total), nil
}

func (s *discoveryService) Search(ctx context.Context, query string, req types.PageRequest) (*types.Page[*types.LearningPlan], error) {
	plans, total, err := s.planRepo.SearchPublic(ctx, nil, strings.TrimSpace(query), req)
	if err != nil {
		return nil, err
	}
	return types.NewPage(plans, req, total), nil
}

func (s *discoveryService) ListPopular(ctx context.Context, req types.PageRequest) (*types.Page[*types.LearningPlan], error) {
	return s.cached(ctx, "popular", req, s.planRepo.ListPopular)
}

func (s *discoveryService) ListRecent(ctx context.Context, req types.PageRequest) (*types.Page[*types.LearningPlan], error) {
	return s.cached(ctx, "recent", req, s.planRepo.ListRecent)
}

type pageQuery func(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error)

// cached serves the hot ranked views through the redis cache, with
// singleflight collapsing concurrent misses for the same page into
// one database load.
func (s *discoveryService) cached(ctx context.Context, view string, req types.PageRequest, query pageQuery) (*types.Page[*types.LearningPlan], error) {
	if s.cache == nil {
		plans, total, err := query(ctx, nil, req)
		if err != nil {
			return nil, err
		}
		return types.NewPage(plans, req, total), nil
	}

	key := cache.PageKey(view, req.Page, req.Size)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var page types.Page[*types.LearningPlan]
		if err := json.Unmarshal(payload, &page); err == nil {
			return &page, nil
		}
		s.log.Warn("discarding corrupt cache entry", "key", key)
	}

	result, err, _ := s.loads.Do(key, func() (interface{}, error) {
		plans, total, err := query(ctx, nil, req)
		if err != nil {
			return nil, err
		}
		page := types.NewPage(plans, req, total)
		if payload, err := json.Marshal(page); err == nil {
			s.cache.Set(ctx, key, payload)
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.Page[*types.LearningPlan]), nil
}
