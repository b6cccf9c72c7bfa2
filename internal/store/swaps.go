package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/YusovID/skillswap-service/internal/validation"
)

// ListActiveSwaps returns every swap still in progress.
func (s *Store) ListActiveSwaps(ctx context.Context) []domain.ActiveSwap {
	var out []domain.ActiveSwap

	s.read(func(d *Dataset) {
		out = filter(d.Swaps, func(sw domain.ActiveSwap) bool { return sw.Status == domain.SwapActive }, copySwap)
	})

	return out
}

func (s *Store) GetSwapsForUser(ctx context.Context, userID string) []domain.ActiveSwap {
	var out []domain.ActiveSwap

	s.read(func(d *Dataset) {
		out = filter(d.Swaps, func(sw domain.ActiveSwap) bool { return sw.HasParticipant(userID) }, copySwap)
	})

	return out
}

func (s *Store) GetSwap(ctx context.Context, id string) (domain.ActiveSwap, bool) {
	var (
		swap  domain.ActiveSwap
		found bool
	)

	s.read(func(d *Dataset) {
		if i := d.swapIdx(id); i >= 0 {
			swap, found = copySwap(d.Swaps[i]), true
		}
	})

	return swap, found
}

// GetSwapForRequest returns the swap started by accepting requestID.
func (s *Store) GetSwapForRequest(ctx context.Context, requestID string) (domain.ActiveSwap, bool) {
	var (
		swap  domain.ActiveSwap
		found bool
	)

	s.read(func(d *Dataset) {
		for _, sw := range d.Swaps {
			if sw.RequestID != "" && sw.RequestID == requestID {
				swap, found = copySwap(sw), true
				return
			}
		}
	})

	return swap, found
}

func (s *Store) UpdateSwapProgress(ctx context.Context, id string, p domain.SwapProgress) (domain.ActiveSwap, error) {
	const op = "internal.store.UpdateSwapProgress"

	var updated domain.ActiveSwap

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.swapIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "swap", ID: id}
		}

		sw := d.Swaps[i]
		if sw.Status != domain.SwapActive {
			return &apperrors.InvalidTransitionError{Entity: "swap", From: string(sw.Status), To: "in progress"}
		}

		if p.SessionsCompleted != nil {
			sw.SessionsCompleted = *p.SessionsCompleted
		}

		if sw.SessionsCompleted < 0 || sw.SessionsCompleted > sw.TotalSessions {
			return validation.New("sessions completed must be between 0 and %d, got %d",
				sw.TotalSessions, sw.SessionsCompleted)
		}

		d.Swaps[i] = sw
		updated = sw

		return nil
	})
	if err != nil {
		return domain.ActiveSwap{}, err
	}

	return copySwap(updated), nil
}

// CompleteSwap marks the swap completed and records the ratings present in c.
// Each participant completes with their own payload: a side without a rating
// is left untouched and can be rated by a later call, but never twice.
func (s *Store) CompleteSwap(ctx context.Context, id string, c domain.SwapCompletion) (domain.ActiveSwap, error) {
	const op = "internal.store.CompleteSwap"

	if err := validation.ValidateStruct(c); err != nil {
		return domain.ActiveSwap{}, fmt.Errorf("%s: %w", op, err)
	}

	var updated domain.ActiveSwap

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.swapIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "swap", ID: id}
		}

		sw := d.Swaps[i]
		now := s.now()

		sides := []struct {
			receiver, rater string
			rating          *int
			feedback        *string
			storedRating    **int
			storedFeedback  *string
		}{
			{sw.User1ID, sw.User2ID, c.Rating1, c.Feedback1, &sw.Rating1, &sw.Feedback1},
			{sw.User2ID, sw.User1ID, c.Rating2, c.Feedback2, &sw.Rating2, &sw.Feedback2},
		}

		for _, side := range sides {
			if side.rating == nil && side.feedback == nil {
				continue
			}

			if *side.storedRating != nil {
				return &apperrors.InvalidTransitionError{
					Entity: "rating of user " + side.receiver,
					From:   "given",
					To:     "given again",
				}
			}

			if side.feedback != nil {
				*side.storedFeedback = *side.feedback
			}

			if side.rating == nil {
				continue
			}

			u := d.userIdx(side.receiver)
			if u < 0 {
				return &apperrors.NotFoundError{Kind: "user", ID: side.receiver}
			}

			r := *side.rating
			*side.storedRating = &r

			d.Users[u].Rating = (d.Users[u].Rating + float64(r)) / 2
			d.Users[u].CompletedSwaps++

			d.Ratings = append(d.Ratings, domain.SwapRating{
				ID:         s.ids.NewID(),
				SwapID:     sw.ID,
				FromUserID: side.rater,
				ToUserID:   side.receiver,
				Rating:     r,
				Feedback:   *side.storedFeedback,
				CreatedAt:  now,
			})
		}

		sw.Status = domain.SwapCompleted
		if sw.CompletedAt == nil {
			sw.CompletedAt = &now
		}

		d.Swaps[i] = sw
		updated = sw

		return nil
	})
	if err != nil {
		return domain.ActiveSwap{}, err
	}

	s.log.Info("swap completed",
		slog.String("op", op),
		slog.String("swap_id", id),
		slog.Bool("rated_user1", c.Rating1 != nil),
		slog.Bool("rated_user2", c.Rating2 != nil),
	)

	return copySwap(updated), nil
}
