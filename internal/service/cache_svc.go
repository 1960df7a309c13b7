package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

// Cache TTLs. Certification facts are immutable once written, but a
// bounded TTL keeps an operator-side delete from lingering forever.
const (
	CertificationCacheTTL = 10 * time.Minute
	PlaylistCacheTTL      = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for certification
// lookups and room playlists.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetCertified retrieves a cached isCertified answer. found=false means
// not cached (or cache disabled), not "not certified".
func (c *CacheService) GetCertified(ctx context.Context, roomID, videoID, userID string) (certified, found bool, err error) {
	if c.rdb == nil {
		return false, false, nil
	}
	val, err := c.rdb.Get(ctx, certificationKey(roomID, videoID, userID)).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	certified, _ = strconv.ParseBool(val)
	return certified, true, nil
}

// SetCertified stores an isCertified answer.
func (c *CacheService) SetCertified(ctx context.Context, roomID, videoID, userID string, certified bool) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, certificationKey(roomID, videoID, userID), strconv.FormatBool(certified), CertificationCacheTTL).Err()
}

// InvalidateCertified removes a cached isCertified answer (called after
// a certification write).
func (c *CacheService) InvalidateCertified(ctx context.Context, roomID, videoID, userID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, certificationKey(roomID, videoID, userID)).Err()
}

// GetPlaylist retrieves a cached room playlist. Returns nil if not
// cached or cache is disabled.
func (c *CacheService) GetPlaylist(ctx context.Context, roomID string) ([]model.Video, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, playlistKey(roomID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var videos []model.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SetPlaylist stores a room playlist in cache.
func (c *CacheService) SetPlaylist(ctx context.Context, roomID string, videos []model.Video) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, playlistKey(roomID), b, PlaylistCacheTTL).Err()
}

// InvalidatePlaylist removes a room playlist from cache (called when the
// count worker refreshes per-video certified counts).
func (c *CacheService) InvalidatePlaylist(ctx context.Context, roomID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, playlistKey(roomID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func certificationKey(roomID, videoID, userID string) string {
	return fmt.Sprintf("cert:%s:%s:%s", roomID, videoID, userID)
}

func playlistKey(roomID string) string {
	return fmt.Sprintf("playlist:%s", roomID)
}
