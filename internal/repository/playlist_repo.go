package repository

import (
	"context"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
	"github.com/ericsone1/youcra-v03-new-sub000/pkg/duration"
)

type PlaylistRepo struct {
	db DB
}

func NewPlaylistRepo(db DB) *PlaylistRepo {
	return &PlaylistRepo{db: db}
}

// ListByRoom returns a room's playlist in play order. The host room
// owns the rows; the engine only reads them. The duration column holds
// whatever form the metadata feed delivered ("245", "4:05", "PT4M5S");
// it is normalized to seconds here, with malformed values becoming 0.
func (r *PlaylistRepo) ListByRoom(ctx context.Context, roomID string) ([]model.Video, error) {
	rows, err := r.db.Query(ctx, `
		SELECT video_id, title, duration, position, certified_count
		FROM room_videos
		WHERE room_id = $1
		ORDER BY position ASC`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		var rawDuration string
		if err := rows.Scan(&v.VideoID, &v.Title, &rawDuration, &v.Position, &v.CertifiedCount); err != nil {
			return nil, err
		}
		v.DurationSeconds = duration.Parse(rawDuration)
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
