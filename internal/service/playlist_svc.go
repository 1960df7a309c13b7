package service

import (
	"context"
	"log"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/repository"
)

type PlaylistService struct {
	repo  *repository.PlaylistRepo
	cache *CacheService
}

func NewPlaylistService(repo *repository.PlaylistRepo, cache *CacheService) *PlaylistService {
	return &PlaylistService{repo: repo, cache: cache}
}

// GetRoomVideos returns a room's ordered playlist, cache-aside. An
// empty result is not an error; rooms without a playlist simply have no
// video player.
func (s *PlaylistService) GetRoomVideos(ctx context.Context, roomID string) ([]model.Video, error) {
	if s.cache != nil {
		videos, err := s.cache.GetPlaylist(ctx, roomID)
		if err != nil {
			log.Printf("cache: get playlist error: %v", err)
		} else if videos != nil {
			return videos, nil
		}
	}

	videos, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(videos) > 0 {
		if err := s.cache.SetPlaylist(ctx, roomID, videos); err != nil {
			log.Printf("cache: set playlist error: %v", err)
		}
	}
	return videos, nil
}
