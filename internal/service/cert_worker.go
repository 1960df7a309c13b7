package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/repository"
)

// CertWorker listens for PostgreSQL NOTIFY on the
// 'certification_changes' channel and batches per-video certified-count
// refreshes. A burst of certifications for the same video in one window
// refreshes its count once.
type CertWorker struct {
	pool    *pgxpool.Pool
	repo    *repository.CertificationRepo
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // "roomID:videoID" keys waiting for refresh
}

// NewCertWorker creates a certified-count refresh worker.
func NewCertWorker(pool *pgxpool.Pool, repo *repository.CertificationRepo, cache *CacheService) *CertWorker {
	return &CertWorker{
		pool:    pool,
		repo:    repo,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for certification_changes notifications and
// processing batches. Blocks until ctx is cancelled.
func (w *CertWorker) Start(ctx context.Context) {
	log.Printf("cert-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("cert-worker: stopping (context cancelled)")
				return
			}
			log.Printf("cert-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("cert-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on
// certification_changes, and accumulates notification payloads for the
// batch flusher.
func (w *CertWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN certification_changes")
	if err != nil {
		return err
	}
	log.Println("cert-worker: listening on certification_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		key := notification.Payload
		if key == "" {
			continue
		}

		w.mu.Lock()
		w.pending[key] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and refreshes counts.
func (w *CertWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and refreshes each video's certified
// count, invalidating the room playlist cache so counts re-read fresh.
func (w *CertWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	refreshed := 0
	for key := range batch {
		roomID, videoID, ok := splitChangeKey(key)
		if !ok {
			log.Printf("cert-worker: malformed notification payload %q", key)
			continue
		}

		if err := w.repo.RefreshCertifiedCount(ctx, roomID, videoID); err != nil {
			log.Printf("cert-worker: refresh error for %s: %v", key, err)
			continue
		}

		if w.cache != nil {
			if err := w.cache.InvalidatePlaylist(ctx, roomID); err != nil {
				log.Printf("cert-worker: cache invalidate error for %s: %v", roomID, err)
			}
		}

		refreshed++
	}

	if refreshed > 0 {
		log.Printf("cert-worker: batch complete, %d videos refreshed (from %d notifications)",
			refreshed, len(batch))
	}
}

// splitChangeKey parses a "roomID:videoID" notification payload. Room
// and video IDs never contain ':' (enforced at the validation layer).
func splitChangeKey(key string) (roomID, videoID string, ok bool) {
	roomID, videoID, ok = strings.Cut(key, ":")
	if !ok || roomID == "" || videoID == "" {
		return "", "", false
	}
	return roomID, videoID, true
}
