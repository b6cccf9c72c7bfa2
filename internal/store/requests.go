package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/YusovID/skillswap-service/internal/validation"
)

func (s *Store) CreateSwapRequest(ctx context.Context, in domain.NewSwapRequest) (domain.SwapRequest, error) {
	const op = "internal.store.CreateSwapRequest"

	if err := validation.ValidateStruct(in); err != nil {
		return domain.SwapRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.FromUserID == in.ToUserID {
		return domain.SwapRequest{}, fmt.Errorf("%s: %w", op, validation.New("a swap request needs two different users"))
	}

	var created domain.SwapRequest

	err := s.mutate(ctx, op, func(d *Dataset) error {
		for _, id := range []string{in.FromUserID, in.ToUserID} {
			if d.userIdx(id) < 0 {
				return &apperrors.NotFoundError{Kind: "user", ID: id}
			}
		}

		created = domain.SwapRequest{
			ID:           s.ids.NewID(),
			FromUserID:   in.FromUserID,
			ToUserID:     in.ToUserID,
			SkillOffered: strings.TrimSpace(in.SkillOffered),
			SkillWanted:  strings.TrimSpace(in.SkillWanted),
			Message:      in.Message,
			Status:       domain.RequestPending,
			CreatedAt:    s.now(),
		}

		d.Requests = append(d.Requests, created)

		return nil
	})
	if err != nil {
		return domain.SwapRequest{}, err
	}

	s.log.Info("swap request created",
		slog.String("op", op),
		slog.String("request_id", created.ID),
		slog.String("from_user_id", created.FromUserID),
		slog.String("to_user_id", created.ToUserID),
	)

	return created, nil
}

// GetRequestsForUser returns the requests userID sent or received, in the
// order they were created.
func (s *Store) GetRequestsForUser(ctx context.Context, userID string) []domain.SwapRequest {
	var out []domain.SwapRequest

	s.read(func(d *Dataset) {
		out = filter(d.Requests, func(r domain.SwapRequest) bool {
			return r.FromUserID == userID || r.ToUserID == userID
		}, identity[domain.SwapRequest])
	})

	return out
}

func (s *Store) ListSwapRequests(ctx context.Context) []domain.SwapRequest {
	var out []domain.SwapRequest

	s.read(func(d *Dataset) {
		out = filter(d.Requests, keepAll[domain.SwapRequest], identity[domain.SwapRequest])
	})

	return out
}

func (s *Store) GetSwapRequest(ctx context.Context, id string) (domain.SwapRequest, bool) {
	var (
		req   domain.SwapRequest
		found bool
	)

	s.read(func(d *Dataset) {
		if i := d.requestIdx(id); i >= 0 {
			req, found = d.Requests[i], true
		}
	})

	return req, found
}

// UpdateSwapRequestStatus moves a pending request to accepted, rejected or
// cancelled. Accepting also starts the swap, which is returned alongside the
// request; for the other outcomes the swap is nil.
func (s *Store) UpdateSwapRequestStatus(
	ctx context.Context,
	id string,
	status domain.RequestStatus,
) (domain.SwapRequest, *domain.ActiveSwap, error) {
	const op = "internal.store.UpdateSwapRequestStatus"

	if !status.Valid() {
		return domain.SwapRequest{}, nil, fmt.Errorf("%s: %w", op, validation.New("unknown swap request status '%s'", status))
	}

	var (
		updated domain.SwapRequest
		spawned *domain.ActiveSwap
	)

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.requestIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "swap request", ID: id}
		}

		req := d.Requests[i]
		if !req.Status.CanTransitionTo(status) {
			return &apperrors.InvalidTransitionError{
				Entity: "swap request",
				From:   string(req.Status),
				To:     string(status),
			}
		}

		req.Status = status
		d.Requests[i] = req
		updated = req

		if status != domain.RequestAccepted {
			return nil
		}

		// A pending request can only have a swap if the data was edited by
		// hand; never start a second one.
		if slices.ContainsFunc(d.Swaps, func(sw domain.ActiveSwap) bool { return sw.RequestID == req.ID }) {
			return nil
		}

		swap := domain.ActiveSwap{
			ID:            s.ids.NewID(),
			RequestID:     req.ID,
			User1ID:       req.FromUserID,
			User2ID:       req.ToUserID,
			Skill1Offered: req.SkillOffered,
			Skill2Offered: req.SkillWanted,
			StartDate:     s.now(),
			Status:        domain.SwapActive,
			TotalSessions: domain.DefaultTotalSessions,
		}

		d.Swaps = append(d.Swaps, swap)
		spawned = &swap

		return nil
	})
	if err != nil {
		return domain.SwapRequest{}, nil, err
	}

	log := s.log.With(slog.String("op", op), slog.String("request_id", id))
	log.Info("swap request status changed", slog.String("status", string(status)))

	if spawned != nil {
		log.Info("swap started", slog.String("swap_id", spawned.ID))
	}

	return updated, spawned, nil
}

// DeleteSwapRequest withdraws a request that is still pending.
func (s *Store) DeleteSwapRequest(ctx context.Context, id string) error {
	const op = "internal.store.DeleteSwapRequest"

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.requestIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "swap request", ID: id}
		}

		if st := d.Requests[i].Status; st != domain.RequestPending {
			return &apperrors.InvalidTransitionError{Entity: "swap request", From: string(st), To: "deleted"}
		}

		d.Requests = slices.Delete(d.Requests, i, i+1)

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("swap request deleted", slog.String("op", op), slog.String("request_id", id))

	return nil
}
