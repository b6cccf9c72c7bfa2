// Package session keeps the currently logged-in user as a serialized record
// under a single key of the key-value backend.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/YusovID/skillswap-service/internal/repository"
)

// UserDirectory is the part of the store the session manager reads from.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (domain.User, bool)
	GetUserByEmail(ctx context.Context, email string) (domain.User, bool)
	MarkActive(ctx context.Context, id string) (domain.User, error)
}

type Manager struct {
	kv    repository.KeyValueStore
	users UserDirectory
	log   *slog.Logger
	key   string
}

// NewManager stores the session under "<prefix>_session".
func NewManager(kv repository.KeyValueStore, users UserDirectory, log *slog.Logger, prefix string) *Manager {
	return &Manager{
		kv:    kv,
		users: users,
		log:   log,
		key:   prefix + "_session",
	}
}

// Login starts a session for the account registered under email.
func (m *Manager) Login(ctx context.Context, email string) (domain.User, error) {
	const op = "internal.session.Login"

	u, ok := m.users.GetUserByEmail(ctx, email)
	if !ok {
		return domain.User{}, &apperrors.NotFoundError{Kind: "account", ID: email}
	}

	u, err := m.users.MarkActive(ctx, u.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: failed to mark user active: %w", op, err)
	}

	if err := m.save(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	m.log.Info("user logged in", slog.String("op", op), slog.String("user_id", u.ID))

	return u, nil
}

// Current returns the logged-in user, or apperrors.ErrUnauthorized when there
// is none.
func (m *Manager) Current(ctx context.Context) (domain.User, error) {
	const op = "internal.session.Current"

	raw, err := m.kv.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.User{}, apperrors.ErrUnauthorized
		}

		return domain.User{}, fmt.Errorf("%s: failed to read session: %w", op, err)
	}

	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return domain.User{}, fmt.Errorf("%s: failed to decode session: %w", op, err)
	}

	return u, nil
}

// Refresh reloads the session user from the store, e.g. after a profile
// edit. A session whose user no longer exists is dropped.
func (m *Manager) Refresh(ctx context.Context) (domain.User, error) {
	const op = "internal.session.Refresh"

	cur, err := m.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}

	u, ok := m.users.GetUserByID(ctx, cur.ID)
	if !ok {
		if err := m.Logout(ctx); err != nil {
			return domain.User{}, err
		}

		return domain.User{}, apperrors.ErrUnauthorized
	}

	if err := m.save(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	const op = "internal.session.Logout"

	if err := m.kv.Delete(ctx, m.key); err != nil {
		return fmt.Errorf("%s: failed to clear session: %w", op, err)
	}

	return nil
}

func (m *Manager) save(ctx context.Context, u domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := m.kv.Set(ctx, m.key, raw); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}
