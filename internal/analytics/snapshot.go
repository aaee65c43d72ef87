// Package analytics keeps a cached aggregate of stored projects and
// breakdowns. A nightly cron job recomputes the snapshot; the HTTP
// endpoint serves the cached copy when fresh and falls back to a live
// computation on a cache miss.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/smartsdlc/go-sdlc-backend/internal/projects/domain"
)

const (
	snapshotKey = "sdlc:analytics:snapshot"
	snapshotTTL = 25 * time.Hour // outlives one missed nightly run
)

// Aggregator is the repository-side computation of the analytics
// snapshot, implemented by projects/repository.BreakdownRepo.
type Aggregator interface {
	Analytics(ctx context.Context) (*domain.Analytics, error)
}

type Service struct {
	repo  Aggregator
	redis *redis.Client
}

func NewService(repo Aggregator, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

// Get returns the cached snapshot when present, otherwise computes it
// live and caches the result.
func (s *Service) Get(ctx context.Context) (*domain.Analytics, error) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, snapshotKey).Result()
		if err == nil {
			var snapshot domain.Analytics
			if err := json.Unmarshal([]byte(data), &snapshot); err == nil {
				return &snapshot, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[warn] analytics snapshot read failed: %v", err)
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the aggregate and stores it in the cache.
func (s *Service) Refresh(ctx context.Context) (*domain.Analytics, error) {
	snapshot, err := s.repo.Analytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute analytics: %w", err)
	}

	if s.redis != nil {
		data, err := json.Marshal(snapshot)
		if err == nil {
			if err := s.redis.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
				log.Printf("[warn] analytics snapshot write failed: %v", err)
			}
		}
	}
	return snapshot, nil
}

// StartScheduler registers the nightly refresh job (03:00 server
// time) and starts the cron loop.
func (s *Service) StartScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Refresh(ctx); err != nil {
			log.Printf("[error] nightly analytics refresh failed: %v", err)
			return
		}
		log.Println("[info] nightly analytics snapshot refreshed")
	})
	if err != nil {
		log.Printf("[error] failed to register analytics cron job: %v", err)
		return c
	}

	log.Println("[info] analytics scheduler started (nightly at 03:00)")
	c.Start()
	return c
}
