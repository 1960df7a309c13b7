package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

// DB is the pgx surface the repositories use. *pgxpool.Pool satisfies it
// in production; pgxmock stands in for tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CertificationRepo struct {
	db DB
}

func NewCertificationRepo(db DB) *CertificationRepo {
	return &CertificationRepo{db: db}
}

// Certify writes the certification fact for (roomID, videoID, uid). The
// row is keyed on exactly that triple, so a duplicate attempt conflicts
// instead of creating a second record: at-most-one is structural, not
// client discipline. Returns inserted=false when the record already
// existed.
func (r *CertificationRepo) Certify(ctx context.Context, roomID, videoID, userID string) (*model.CertificationRecord, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	var certifiedAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO certifications (room_id, video_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, video_id, user_id) DO NOTHING
		RETURNING certified_at`,
		roomID, videoID, userID).Scan(&certifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict: a concurrent or earlier certify already holds the key.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Wake the count worker for this video.
	_, err = tx.Exec(ctx, `SELECT pg_notify('certification_changes', $1 || ':' || $2)`, roomID, videoID)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}

	return &model.CertificationRecord{
		RoomID:      roomID,
		VideoID:     videoID,
		UserID:      userID,
		CertifiedAt: certifiedAt,
	}, true, nil
}

// IsCertified reports whether a certification record exists for the key.
func (r *CertificationRepo) IsCertified(ctx context.Context, roomID, videoID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM certifications
			WHERE room_id = $1 AND video_id = $2 AND user_id = $3
		)`,
		roomID, videoID, userID).Scan(&exists)
	return exists, err
}

// ListByUser returns a user's certification records, newest first.
func (r *CertificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.CertificationRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT room_id, video_id, user_id, certified_at
		FROM certifications
		WHERE user_id = $1
		ORDER BY certified_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByRoom returns every certification record in a room, oldest first
// (export order).
func (r *CertificationRepo) ListByRoom(ctx context.Context, roomID string) ([]model.CertificationRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT room_id, video_id, user_id, certified_at
		FROM certifications
		WHERE room_id = $1
		ORDER BY certified_at ASC`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// RefreshCertifiedCount recomputes the denormalized per-video certified
// count from the records table. Called by the count worker.
func (r *CertificationRepo) RefreshCertifiedCount(ctx context.Context, roomID, videoID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE room_videos
		SET certified_count = (
			SELECT COUNT(*) FROM certifications
			WHERE room_id = $1 AND video_id = $2
		)
		WHERE room_id = $1 AND video_id = $2`,
		roomID, videoID)
	return err
}

// GetStats returns aggregate counts for the stats endpoint.
func (r *CertificationRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM certifications),
			(SELECT COUNT(DISTINCT room_id) FROM room_videos),
			(SELECT COUNT(*) FROM room_videos)`).
		Scan(&stats.TotalCertifications, &stats.RoomsTracked, &stats.VideosTracked)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanRecords(rows pgx.Rows) ([]model.CertificationRecord, error) {
	var records []model.CertificationRecord
	for rows.Next() {
		var rec model.CertificationRecord
		if err := rows.Scan(&rec.RoomID, &rec.VideoID, &rec.UserID, &rec.CertifiedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
