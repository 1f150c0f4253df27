// Package admin implements the authenticated reporting surface:
// extended funnel analytics and waitlist exports.
package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/dto"
)

// Server implements handlers for admin requests.
type Server struct {
	repo dependency.Repository
}

// New creates a new server with admin handlers.
func New(r dependency.Repository) *Server {
	return &Server{
		repo: r,
	}
}

// Analytics returns the funnel summary including payment counts and
// the waitlist backlog.
func (s *Server) Analytics(ctx context.Context) (*dto.AdminAnalyticsResponse, error) {
	snapshot, err := s.repo.Analytics().GetFunnelSnapshot(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get funnel snapshot",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't get funnel snapshot: %w", err)
	}

	count, err := s.repo.Waitlist().Count(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't count waitlist",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't count waitlist: %w", err)
	}

	resp := dto.ConvertFunnelSnapshotAdmin(snapshot, count)
	return &resp, nil
}

// WaitlistEntries returns every waitlist row in signup order.
func (s *Server) WaitlistEntries(ctx context.Context) ([]dto.WaitlistEntryResponse, error) {
	entries, err := s.repo.Waitlist().ListEntries(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list waitlist entries",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't list waitlist entries: %w", err)
	}
	return dto.ConvertWaitlistEntries(entries), nil
}

// WaitlistCSV renders the waitlist as a CSV export.
func (s *Server) WaitlistCSV(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.Waitlist().ListEntries(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list waitlist entries",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't list waitlist entries: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "email", "selected_plan", "created_at", "notified"}); err != nil {
		return nil, fmt.Errorf("can't write csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Id),
			e.Email,
			e.SelectedPlan.String(),
			e.CreatedAt.Format(time.RFC3339),
			strconv.FormatBool(e.Notified),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("can't write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("can't flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
