package service

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/repository"
)

func TestSplitChangeKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantRoom  string
		wantVideo string
		wantOK    bool
	}{
		{"well formed", "room-1:vid-a", "room-1", "vid-a", true},
		{"missing separator", "room-1", "", "", false},
		{"empty room", ":vid-a", "", "", false},
		{"empty video", "room-1:", "", "", false},
		{"empty payload", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, video, ok := splitChangeKey(tt.key)
			if room != tt.wantRoom || video != tt.wantVideo || ok != tt.wantOK {
				t.Errorf("splitChangeKey(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.key, room, video, ok, tt.wantRoom, tt.wantVideo, tt.wantOK)
			}
		})
	}
}

func TestCertWorker_FlushDrainsPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	w := &CertWorker{
		repo:    repository.NewCertificationRepo(mock),
		pending: map[string]struct{}{"room-1:vid-a": {}},
	}

	mock.ExpectExec(`UPDATE room_videos`).
		WithArgs("room-1", "vid-a").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	w.flush(context.Background())

	if len(w.pending) != 0 {
		t.Errorf("pending after flush = %d entries, want 0", len(w.pending))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCertWorker_FlushSkipsMalformedPayload(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	w := &CertWorker{
		repo:    repository.NewCertificationRepo(mock),
		pending: map[string]struct{}{"garbage": {}},
	}

	// No expectations: a malformed payload never reaches the database.
	w.flush(context.Background())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
