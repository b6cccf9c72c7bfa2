package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/YusovID/skillswap-service/internal/validation"
)

func (s *Store) CreateReport(ctx context.Context, in domain.NewReport) (domain.Report, error) {
	const op = "internal.store.CreateReport"

	if err := validation.ValidateStruct(in); err != nil {
		return domain.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.ReporterID == in.ReportedUserID {
		return domain.Report{}, fmt.Errorf("%s: %w", op, validation.New("users cannot report themselves"))
	}

	var created domain.Report

	err := s.mutate(ctx, op, func(d *Dataset) error {
		for _, id := range []string{in.ReporterID, in.ReportedUserID} {
			if d.userIdx(id) < 0 {
				return &apperrors.NotFoundError{Kind: "user", ID: id}
			}
		}

		created = domain.Report{
			ID:             s.ids.NewID(),
			ReporterID:     in.ReporterID,
			ReportedUserID: in.ReportedUserID,
			Reason:         strings.TrimSpace(in.Reason),
			Description:    in.Description,
			CreatedAt:      s.now(),
			Status:         domain.ReportPending,
		}

		d.Reports = append(d.Reports, created)

		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}

	s.log.Info("report filed",
		slog.String("op", op),
		slog.String("report_id", created.ID),
		slog.String("reported_user_id", created.ReportedUserID),
	)

	return created, nil
}

func (s *Store) ListReports(ctx context.Context) []domain.Report {
	var out []domain.Report

	s.read(func(d *Dataset) {
		out = filter(d.Reports, keepAll[domain.Report], identity[domain.Report])
	})

	return out
}

// UpdateReportStatus resolves or dismisses a pending report.
func (s *Store) UpdateReportStatus(ctx context.Context, id string, status domain.ReportStatus) (domain.Report, error) {
	const op = "internal.store.UpdateReportStatus"

	if !status.Valid() {
		return domain.Report{}, fmt.Errorf("%s: %w", op, validation.New("unknown report status '%s'", status))
	}

	var updated domain.Report

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.reportIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "report", ID: id}
		}

		if cur := d.Reports[i].Status; !cur.CanTransitionTo(status) {
			return &apperrors.InvalidTransitionError{Entity: "report", From: string(cur), To: string(status)}
		}

		d.Reports[i].Status = status
		updated = d.Reports[i]

		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}

	s.log.Info("report status changed",
		slog.String("op", op),
		slog.String("report_id", id),
		slog.String("status", string(status)),
	)

	return updated, nil
}

func (s *Store) CreatePlatformMessage(ctx context.Context, in domain.NewPlatformMessage) (domain.PlatformMessage, error) {
	const op = "internal.store.CreatePlatformMessage"

	if err := validation.ValidateStruct(in); err != nil {
		return domain.PlatformMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	var created domain.PlatformMessage

	err := s.mutate(ctx, op, func(d *Dataset) error {
		if d.userIdx(in.SentBy) < 0 {
			return &apperrors.NotFoundError{Kind: "user", ID: in.SentBy}
		}

		created = domain.PlatformMessage{
			ID:        s.ids.NewID(),
			Title:     strings.TrimSpace(in.Title),
			Content:   in.Content,
			CreatedAt: s.now(),
			SentBy:    in.SentBy,
		}

		d.Messages = append(d.Messages, created)

		return nil
	})
	if err != nil {
		return domain.PlatformMessage{}, err
	}

	s.log.Info("platform message sent", slog.String("op", op), slog.String("message_id", created.ID))

	return created, nil
}

func (s *Store) ListPlatformMessages(ctx context.Context) []domain.PlatformMessage {
	var out []domain.PlatformMessage

	s.read(func(d *Dataset) {
		out = filter(d.Messages, keepAll[domain.PlatformMessage], identity[domain.PlatformMessage])
	})

	return out
}

// CreateSwapRating appends an entry to the rating log. The rater and the
// rated user must be the two participants of the swap.
func (s *Store) CreateSwapRating(ctx context.Context, in domain.NewSwapRating) (domain.SwapRating, error) {
	const op = "internal.store.CreateSwapRating"

	if err := validation.ValidateStruct(in); err != nil {
		return domain.SwapRating{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.FromUserID == in.ToUserID {
		return domain.SwapRating{}, fmt.Errorf("%s: %w", op, validation.New("users cannot rate themselves"))
	}

	var created domain.SwapRating

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.swapIdx(in.SwapID)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "swap", ID: in.SwapID}
		}

		for _, id := range []string{in.FromUserID, in.ToUserID} {
			if d.userIdx(id) < 0 {
				return &apperrors.NotFoundError{Kind: "user", ID: id}
			}

			if !d.Swaps[i].HasParticipant(id) {
				return validation.New("user '%s' is not a participant of swap '%s'", id, in.SwapID)
			}
		}

		created = domain.SwapRating{
			ID:         s.ids.NewID(),
			SwapID:     in.SwapID,
			FromUserID: in.FromUserID,
			ToUserID:   in.ToUserID,
			Rating:     in.Rating,
			Feedback:   in.Feedback,
			CreatedAt:  s.now(),
		}

		d.Ratings = append(d.Ratings, created)

		return nil
	})
	if err != nil {
		return domain.SwapRating{}, err
	}

	return created, nil
}

func (s *Store) ListSwapRatings(ctx context.Context) []domain.SwapRating {
	var out []domain.SwapRating

	s.read(func(d *Dataset) {
		out = filter(d.Ratings, keepAll[domain.SwapRating], identity[domain.SwapRating])
	})

	return out
}
