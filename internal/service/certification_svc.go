package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/engine"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/repository"
)

// Error taxonomy for certify attempts. AlreadyCertified is surfaced by
// the handler as a no-op success; NotEligible means the watch rule is
// not yet satisfied; anything else is a persistence failure the caller
// may retry without re-watching.
var (
	ErrNotEligible     = errors.New("watch rule not satisfied")
	ErrNoActiveSession = errors.New("no active watch session")
)

const userCertificationsLimit = 100

type CertificationService struct {
	repo    *repository.CertificationRepo
	manager *engine.Manager
	cache   *CacheService
}

func NewCertificationService(repo *repository.CertificationRepo, manager *engine.Manager, cache *CacheService) *CertificationService {
	return &CertificationService{repo: repo, manager: manager, cache: cache}
}

// Certify records the certification fact for the caller's current watch
// session. Eligibility is checked against the live session before the
// write; the keyed insert detects a duplicate instead of creating a
// second record. On success the session's passive countdown is
// pre-empted. A persistence failure leaves the session's timers running
// so the caller can retry without re-watching.
func (s *CertificationService) Certify(ctx context.Context, req model.CertifyRequest) (*model.CertifyResponse, error) {
	sess, ok := s.manager.Get(req.SessionID)
	if !ok || sess.RoomID != req.RoomID || sess.UserID != req.UserID {
		return nil, ErrNoActiveSession
	}

	snap := sess.Snapshot()
	if snap.VideoID != req.VideoID {
		// Certify applies to the session's current video only; a stale
		// request from before a video switch is not eligible.
		return nil, ErrNotEligible
	}
	if !snap.Eligible {
		return nil, ErrNotEligible
	}

	rec, inserted, err := s.repo.Certify(ctx, req.RoomID, req.VideoID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("persist certification: %w", err)
	}

	// Manual certification pre-empts the passive countdown either way.
	sess.MarkCertified()

	if s.cache != nil {
		if err := s.cache.InvalidateCertified(ctx, req.RoomID, req.VideoID, req.UserID); err != nil {
			log.Printf("cache: invalidate certification error: %v", err)
		}
	}

	if !inserted {
		return &model.CertifyResponse{Success: true, AlreadyCertified: true}, nil
	}
	return &model.CertifyResponse{Success: true, Record: rec}, nil
}

// IsCertified answers the existence query, cache-aside.
func (s *CertificationService) IsCertified(ctx context.Context, roomID, videoID, userID string) (bool, error) {
	if s.cache != nil {
		certified, found, err := s.cache.GetCertified(ctx, roomID, videoID, userID)
		if err != nil {
			log.Printf("cache: get certification error: %v", err)
		} else if found {
			return certified, nil
		}
	}

	certified, err := s.repo.IsCertified(ctx, roomID, videoID, userID)
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.SetCertified(ctx, roomID, videoID, userID, certified); err != nil {
			log.Printf("cache: set certification error: %v", err)
		}
	}
	return certified, nil
}

// ListByUser returns a user's certification records for profile views.
func (s *CertificationService) ListByUser(ctx context.Context, userID string) ([]model.CertificationRecord, error) {
	return s.repo.ListByUser(ctx, userID, userCertificationsLimit)
}

// ListByRoom returns every certification in a room (admin export).
func (s *CertificationService) ListByRoom(ctx context.Context, roomID string) ([]model.CertificationRecord, error) {
	return s.repo.ListByRoom(ctx, roomID)
}

// GetStats returns aggregate platform statistics including live session
// count.
func (s *CertificationService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveSessions = s.manager.ActiveCount()
	return stats, nil
}
