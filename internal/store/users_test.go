package store

import (
	"context"
	"strings"
	"testing"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userIDs(users []domain.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	return ids
}

func TestStore_CreateUser(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		input       domain.NewUser
		expectedErr error
	}{
		{
			name: "Success",
			input: domain.NewUser{
				Name:          "  Omar Haddad ",
				Email:         "omar@example.com",
				IsPublic:      true,
				SkillsOffered: []string{"Arabic", " arabic", "", "Calligraphy"},
			},
		},
		{
			name:        "Failure: blank name",
			input:       domain.NewUser{Name: "   ", Email: "blank@example.com"},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Failure: invalid email",
			input:       domain.NewUser{Name: "No Mail", Email: "not-an-email"},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Failure: email taken, different case",
			input:       domain.NewUser{Name: "Impostor", Email: "PRIYA@example.com"},
			expectedErr: apperrors.ErrDuplicateEmail,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestStore(t, DefaultSeed())
			before := len(s.ListUsers(ctx))

			u, err := s.CreateUser(ctx, tc.input)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				assert.Len(t, s.ListUsers(ctx), before)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "id-1", u.ID)
			assert.Equal(t, "Omar Haddad", u.Name)
			assert.Zero(t, u.Rating)
			assert.Zero(t, u.CompletedSwaps)
			assert.Equal(t, testNow, u.JoinDate)
			assert.Equal(t, testNow, u.LastActive)
			assert.Equal(t, []string{"Arabic", "Calligraphy"}, u.SkillsOffered)
			assert.Empty(t, u.SkillsWanted)

			stored, ok := s.GetUserByEmail(ctx, "OMAR@example.com")
			require.True(t, ok)
			assert.Equal(t, u, stored)
		})
	}
}

func TestStore_CreateUser_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, DefaultSeed())

	seen := make(map[string]struct{})
	for _, u := range s.ListUsers(ctx) {
		seen[u.ID] = struct{}{}
	}

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u, err := s.CreateUser(ctx, domain.NewUser{Name: "User", Email: email})
		require.NoError(t, err, i)

		_, dup := seen[u.ID]
		assert.False(t, dup, "id %s reused", u.ID)
		seen[u.ID] = struct{}{}
	}
}

func TestStore_UpdateUser(t *testing.T) {
	ctx := context.Background()

	name := "Priya S."
	public := false
	skills := []string{"Go", "go", " Rust "}
	rahulEmail := "Rahul@Example.com"
	blank := "  "
	longSkills := []string{"Go", strings.Repeat("x", 101)}

	testCases := []struct {
		name        string
		id          string
		update      domain.UserUpdate
		expectedErr error
		check       func(t *testing.T, u domain.User)
	}{
		{
			name:   "Success: partial merge",
			id:     "1",
			update: domain.UserUpdate{Name: &name, IsPublic: &public, SkillsOffered: &skills},
			check: func(t *testing.T, u domain.User) {
				assert.Equal(t, "Priya S.", u.Name)
				assert.False(t, u.IsPublic)
				assert.Equal(t, []string{"Go", "Rust"}, u.SkillsOffered)
				assert.Equal(t, "priya@example.com", u.Email)
				assert.Equal(t, []string{"Machine Learning", "DevOps", "Mobile Development"}, u.SkillsWanted)
				assert.Equal(t, 4.8, u.Rating)
			},
		},
		{
			name:   "Success: own email in another case",
			id:     "1",
			update: domain.UserUpdate{Email: func() *string { e := "Priya@Example.com"; return &e }()},
			check: func(t *testing.T, u domain.User) {
				assert.Equal(t, "Priya@Example.com", u.Email)
			},
		},
		{
			name:        "Failure: unknown user",
			id:          "ghost",
			update:      domain.UserUpdate{Name: &name},
			expectedErr: apperrors.ErrNotFound,
		},
		{
			name:        "Failure: email of someone else",
			id:          "1",
			update:      domain.UserUpdate{Email: &rahulEmail},
			expectedErr: apperrors.ErrDuplicateEmail,
		},
		{
			name:        "Failure: blank name",
			id:          "1",
			update:      domain.UserUpdate{Name: &blank},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Failure: overlong skill",
			id:          "1",
			update:      domain.UserUpdate{SkillsWanted: &longSkills},
			expectedErr: apperrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestStore(t, DefaultSeed())
			before, _ := s.GetUserByID(ctx, "1")

			u, err := s.UpdateUser(ctx, tc.id, tc.update)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				after, _ := s.GetUserByID(ctx, "1")
				assert.Equal(t, before, after)

				return
			}

			require.NoError(t, err)
			tc.check(t, u)

			stored, _ := s.GetUserByID(ctx, tc.id)
			assert.Equal(t, u, stored)
		})
	}
}

func TestStore_SetUserVisibility(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, DefaultSeed())

	u, err := s.SetUserVisibility(ctx, "7", false)
	require.NoError(t, err)
	assert.False(t, u.IsPublic)
	assert.NotContains(t, userIDs(s.ListPublicUsers(ctx)), "7")
	assert.Equal(t, 8, s.GetStats(ctx).TotalUsers, "banned users still count")

	_, err = s.SetUserVisibility(ctx, "7", true)
	require.NoError(t, err)
	assert.Contains(t, userIDs(s.ListPublicUsers(ctx)), "7")

	_, err = s.SetUserVisibility(ctx, "ghost", true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_MarkActive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, DefaultSeed())

	u, err := s.MarkActive(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, testNow, u.LastActive)

	_, err = s.MarkActive(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_ListPublicUsers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, DefaultSeed())

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, userIDs(s.ListPublicUsers(ctx)))
}

func TestStore_GetUser_Absent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, nil)

	_, ok := s.GetUserByID(ctx, "1")
	assert.False(t, ok)

	_, ok = s.GetUserByEmail(ctx, "priya@example.com")
	assert.False(t, ok)
}

func TestStore_SearchUsers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, nil)

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "React", "CSS")
	reactor := mustCreateUser(t, s, "Reactor Bob", "bob@example.com", "Welding")
	carol := mustCreateUser(t, s, "Carol", "carol@example.com", "Cooking")

	hidden, err := s.CreateUser(ctx, domain.NewUser{
		Name:          "Hidden React Fan",
		Email:         "hidden@example.com",
		SkillsOffered: []string{"React Native"},
	})
	require.NoError(t, err)

	wanted := []string{"react native"}
	dave, err := s.CreateUser(ctx, domain.NewUser{
		Name:         "Dave",
		Email:        "dave@example.com",
		IsPublic:     true,
		SkillsWanted: wanted,
	})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		query    string
		category string
		expected []string
	}{
		{
			name:     "query matches name or skills, private excluded",
			query:    "REACT",
			category: "all",
			expected: []string{alice.ID, reactor.ID, dave.ID},
		},
		{
			name:     "empty filters return every public user",
			expected: []string{alice.ID, reactor.ID, carol.ID, dave.ID},
		},
		{
			name:     "category only matches skills",
			category: "react",
			expected: []string{alice.ID, dave.ID},
		},
		{
			name:     "both filters are applied",
			query:    "alice",
			category: "native",
			expected: []string{},
		},
		{
			name:     "no match",
			query:    "quantum",
			category: "all",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := userIDs(s.SearchUsers(ctx, tc.query, tc.category))

			assert.Equal(t, tc.expected, got)
			assert.NotContains(t, got, hidden.ID)
		})
	}
}
