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

func (s *Store) ListPublicUsers(ctx context.Context) []domain.User {
	var out []domain.User

	s.read(func(d *Dataset) {
		out = filter(d.Users, func(u domain.User) bool { return u.IsPublic }, copyUser)
	})

	return out
}

// ListUsers returns every user, private and banned ones included.
func (s *Store) ListUsers(ctx context.Context) []domain.User {
	var out []domain.User

	s.read(func(d *Dataset) {
		out = filter(d.Users, keepAll[domain.User], copyUser)
	})

	return out
}

func (s *Store) GetUserByID(ctx context.Context, id string) (domain.User, bool) {
	var (
		user  domain.User
		found bool
	)

	s.read(func(d *Dataset) {
		if i := d.userIdx(id); i >= 0 {
			user, found = copyUser(d.Users[i]), true
		}
	})

	return user, found
}

// GetUserByEmail looks the user up by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, bool) {
	var (
		user  domain.User
		found bool
	)

	s.read(func(d *Dataset) {
		if i := d.userByEmailIdx(email); i >= 0 {
			user, found = copyUser(d.Users[i]), true
		}
	})

	return user, found
}

func (s *Store) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	const op = "internal.store.CreateUser"

	if err := validation.ValidateStruct(in); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	var created domain.User

	err := s.mutate(ctx, op, func(d *Dataset) error {
		email := strings.TrimSpace(in.Email)
		if d.userByEmailIdx(email) >= 0 {
			return &apperrors.DuplicateEmailError{Email: email}
		}

		now := s.now()

		created = domain.User{
			ID:            s.ids.NewID(),
			Name:          strings.TrimSpace(in.Name),
			Email:         email,
			Location:      in.Location,
			Bio:           in.Bio,
			Availability:  in.Availability,
			ProfilePhoto:  in.ProfilePhoto,
			IsPublic:      in.IsPublic,
			IsAdmin:       in.IsAdmin,
			SkillsOffered: domain.NormalizeSkills(in.SkillsOffered),
			SkillsWanted:  domain.NormalizeSkills(in.SkillsWanted),
			JoinDate:      now,
			LastActive:    now,
		}

		d.Users = append(d.Users, created)

		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info("user created", slog.String("op", op), slog.String("user_id", created.ID))

	return copyUser(created), nil
}

// UpdateUser merges the non-nil fields of upd into the user's profile.
func (s *Store) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error) {
	const op = "internal.store.UpdateUser"

	if err := validation.ValidateStruct(upd); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	var updated domain.User

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.userIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "user", ID: id}
		}

		u := d.Users[i]

		if upd.Email != nil {
			email := strings.TrimSpace(*upd.Email)
			if j := d.userByEmailIdx(email); j >= 0 && j != i {
				return &apperrors.DuplicateEmailError{Email: email}
			}

			u.Email = email
		}

		if upd.Name != nil {
			u.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Location != nil {
			u.Location = *upd.Location
		}
		if upd.Bio != nil {
			u.Bio = *upd.Bio
		}
		if upd.Availability != nil {
			u.Availability = *upd.Availability
		}
		if upd.ProfilePhoto != nil {
			u.ProfilePhoto = *upd.ProfilePhoto
		}
		if upd.IsPublic != nil {
			u.IsPublic = *upd.IsPublic
		}
		if upd.SkillsOffered != nil {
			u.SkillsOffered = domain.NormalizeSkills(*upd.SkillsOffered)
		}
		if upd.SkillsWanted != nil {
			u.SkillsWanted = domain.NormalizeSkills(*upd.SkillsWanted)
		}

		d.Users[i] = u
		updated = u

		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return copyUser(updated), nil
}

// SetUserVisibility is the admin ban/unban switch.
func (s *Store) SetUserVisibility(ctx context.Context, id string, public bool) (domain.User, error) {
	const op = "internal.store.SetUserVisibility"

	var updated domain.User

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.userIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "user", ID: id}
		}

		d.Users[i].IsPublic = public
		updated = d.Users[i]

		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info("user visibility changed",
		slog.String("op", op),
		slog.String("user_id", id),
		slog.Bool("public", public),
	)

	return copyUser(updated), nil
}

// MarkActive sets the user's lastActive to now.
func (s *Store) MarkActive(ctx context.Context, id string) (domain.User, error) {
	const op = "internal.store.MarkActive"

	var updated domain.User

	err := s.mutate(ctx, op, func(d *Dataset) error {
		i := d.userIdx(id)
		if i < 0 {
			return &apperrors.NotFoundError{Kind: "user", ID: id}
		}

		d.Users[i].LastActive = s.now()
		updated = d.Users[i]

		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return copyUser(updated), nil
}

// SearchUsers returns public users matching both filters. An empty or "all"
// category and an empty query match everyone.
func (s *Store) SearchUsers(ctx context.Context, query, category string) []domain.User {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))

	if category == "all" {
		category = ""
	}

	var out []domain.User

	s.read(func(d *Dataset) {
		out = filter(d.Users, func(u domain.User) bool {
			if !u.IsPublic {
				return false
			}

			if category != "" && !hasSkillContaining(u, category) {
				return false
			}

			if query == "" {
				return true
			}

			return strings.Contains(strings.ToLower(u.Name), query) || hasSkillContaining(u, query)
		}, copyUser)
	})

	return out
}

// hasSkillContaining expects needle to be lower case.
func hasSkillContaining(u domain.User, needle string) bool {
	match := func(skill string) bool { return strings.Contains(strings.ToLower(skill), needle) }

	return slices.ContainsFunc(u.SkillsOffered, match) || slices.ContainsFunc(u.SkillsWanted, match)
}
