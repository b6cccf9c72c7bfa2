package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/YusovID/skillswap-service/internal/repository/memory"
	"github.com/YusovID/skillswap-service/internal/repository/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	discard = slog.New(slog.DiscardHandler)
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func fixedClock() time.Time { return testNow }

// newTestStore builds a store over a fresh in-memory backend, starting from
// seed (nil for an empty platform).
func newTestStore(t *testing.T, seed *Dataset) (*Store, *memory.KVRepository) {
	t.Helper()

	kv := memory.NewKVRepository()

	s, err := New(context.Background(), kv, discard,
		WithClock(fixedClock),
		WithIDGenerator(&seqIDs{}),
		WithSeed(seed),
	)
	require.NoError(t, err)

	return s, kv
}

func mustCreateUser(t *testing.T, s *Store, name, email string, skills ...string) domain.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), domain.NewUser{
		Name:          name,
		Email:         email,
		IsPublic:      true,
		SkillsOffered: skills,
	})
	require.NoError(t, err)

	return u
}

func snapshot(s *Store) (domain.ActivityExport, []domain.PlatformMessage) {
	ctx := context.Background()
	return s.ExportUserActivity(ctx), s.ListPlatformMessages(ctx)
}

func TestNew_SeedsAbsentCollections(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVRepository()

	require.NoError(t, kv.Set(ctx, "skillswap_reports", []byte(`[]`)))

	s, err := New(ctx, kv, discard, WithClock(fixedClock), WithIDGenerator(&seqIDs{}))
	require.NoError(t, err)

	seed := DefaultSeed()

	assert.Len(t, s.ListUsers(ctx), len(seed.Users))
	assert.Len(t, s.ListSwapRequests(ctx), len(seed.Requests))
	assert.Empty(t, s.ListReports(ctx), "persisted empty collection must not be reseeded")

	st := s.GetStats(ctx)
	assert.Equal(t, domain.Stats{
		TotalUsers:     8,
		ActiveSwaps:    2,
		PendingReports: 0,
		CompletedSwaps: 1,
		TotalRatings:   2,
		AverageRating:  4.5,
	}, st)
}

func TestNew_DefaultSeedStats(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, memory.NewKVRepository(), discard)
	require.NoError(t, err)

	assert.Equal(t, domain.Stats{
		TotalUsers:     8,
		ActiveSwaps:    2,
		PendingReports: 2,
		CompletedSwaps: 1,
		TotalRatings:   2,
		AverageRating:  4.5,
	}, s.GetStats(ctx))

	swap, ok := s.GetSwapForRequest(ctx, "3")
	require.True(t, ok)
	assert.Equal(t, "1", swap.ID)
}

func TestNew_CorruptCollection(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVRepository()
	require.NoError(t, kv.Set(ctx, "skillswap_swaps", []byte(`{not json`)))

	_, err := New(ctx, kv, discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skillswap_swaps")
}

func TestNew_BackendReadFails(t *testing.T) {
	kv := new(KeyValueStoreMock)
	kv.On("GetMany", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := New(context.Background(), kv, discard)
	require.Error(t, err)

	kv.AssertExpectations(t)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, DefaultSeed())

	u := mustCreateUser(t, s, "Lena Ortiz", "lena@example.com", "Pottery")

	req, err := s.CreateSwapRequest(ctx, domain.NewSwapRequest{
		FromUserID:   u.ID,
		ToUserID:     "2",
		SkillOffered: "Pottery",
		SkillWanted:  "Guitar",
	})
	require.NoError(t, err)

	_, swap, err := s.UpdateSwapRequestStatus(ctx, req.ID, domain.RequestAccepted)
	require.NoError(t, err)

	_, err = s.CompleteSwap(ctx, swap.ID, domain.SwapCompletion{Rating2: intPtr(5)})
	require.NoError(t, err)

	_, err = s.CreatePlatformMessage(ctx, domain.NewPlatformMessage{
		Title:   "Maintenance",
		Content: "Down for five minutes",
		SentBy:  "admin",
	})
	require.NoError(t, err)

	_, err = s.UpdateReportStatus(ctx, "1", domain.ReportResolved)
	require.NoError(t, err)

	reloaded, err := New(ctx, kv, discard, WithSeed(nil))
	require.NoError(t, err)

	wantExport, wantMessages := snapshot(s)
	gotExport, gotMessages := snapshot(reloaded)

	if diff := cmp.Diff(wantExport, gotExport, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("export mismatch after reload (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(wantMessages, gotMessages, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("messages mismatch after reload (-want +got):\n%s", diff)
	}
}

func TestStore_RoundTripRedis(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	kv := redis.NewKVRepository(rdb, discard)

	s, err := New(ctx, kv, discard, WithClock(fixedClock), WithIDGenerator(&seqIDs{}))
	require.NoError(t, err)

	_, err = s.CompleteSwap(ctx, "1", domain.SwapCompletion{Rating1: intPtr(4), Feedback1: strPtr("Clear explanations")})
	require.NoError(t, err)

	_, err = s.CreateReport(ctx, domain.NewReport{ReporterID: "4", ReportedUserID: "2", Reason: "Late"})
	require.NoError(t, err)

	assert.True(t, mr.Exists("skillswap_swaps"))

	reloaded, err := New(ctx, kv, discard, WithSeed(nil))
	require.NoError(t, err)

	wantExport, _ := snapshot(s)
	gotExport, _ := snapshot(reloaded)

	if diff := cmp.Diff(wantExport, gotExport, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("export mismatch after reload (-want +got):\n%s", diff)
	}
}

func TestStore_CustomKeyPrefix(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVRepository()

	s, err := New(ctx, kv, discard, WithKeyPrefix("tenant42"), WithSeed(nil), WithIDGenerator(&seqIDs{}))
	require.NoError(t, err)

	mustCreateUser(t, s, "Kai", "kai@example.com")

	raw, err := kv.Get(ctx, "tenant42_users")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "kai@example.com")

	for _, key := range []string{"tenant42_requests", "tenant42_swaps", "tenant42_reports", "tenant42_messages", "tenant42_ratings"} {
		v, err := kv.Get(ctx, key)
		require.NoError(t, err, key)
		assert.JSONEq(t, `[]`, string(v), key)
	}
}

func TestStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()

	kv := new(KeyValueStoreMock)
	kv.On("GetMany", mock.Anything, mock.Anything).Return(map[string][]byte{}, nil)
	kv.On("SetMany", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	s, err := New(ctx, kv, discard, WithClock(fixedClock), WithIDGenerator(&seqIDs{}))
	require.NoError(t, err)

	beforeExport, beforeMessages := snapshot(s)
	beforeStats := s.GetStats(ctx)

	_, err = s.CreateUser(ctx, domain.NewUser{Name: "Nadia", Email: "nadia@example.com"})
	require.Error(t, err)

	_, _, err = s.UpdateSwapRequestStatus(ctx, "1", domain.RequestAccepted)
	require.Error(t, err)

	_, err = s.CompleteSwap(ctx, "1", domain.SwapCompletion{Rating1: intPtr(5), Rating2: intPtr(3)})
	require.Error(t, err)

	require.Error(t, s.DeleteSwapRequest(ctx, "2"))

	afterExport, afterMessages := snapshot(s)

	if diff := cmp.Diff(beforeExport, afterExport, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("state changed by failed writes (-before +after):\n%s", diff)
	}

	assert.Equal(t, beforeMessages, afterMessages)
	assert.Equal(t, beforeStats, s.GetStats(ctx))

	kv.AssertNumberOfCalls(t, "SetMany", 4)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, DefaultSeed())

	u, ok := s.GetUserByID(ctx, "1")
	require.True(t, ok)

	u.SkillsOffered[0] = "Tampered"
	u.Name = "Tampered"

	again, _ := s.GetUserByID(ctx, "1")
	assert.Equal(t, "Priya Sharma", again.Name)
	assert.Equal(t, "React", again.SkillsOffered[0])

	sw, ok := s.GetSwap(ctx, "3")
	require.True(t, ok)
	*sw.Rating1 = 1

	sw, _ = s.GetSwap(ctx, "3")
	assert.Equal(t, 5, *sw.Rating1)
}

func TestStore_RejectedInputNamesOperation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, DefaultSeed())

	testCases := []struct {
		name string
		op   string
		call func() error
	}{
		{
			name: "create user",
			op:   "internal.store.CreateUser",
			call: func() error {
				_, err := s.CreateUser(ctx, domain.NewUser{Name: "", Email: "nobody"})
				return err
			},
		},
		{
			name: "same-user request",
			op:   "internal.store.CreateSwapRequest",
			call: func() error {
				_, err := s.CreateSwapRequest(ctx, domain.NewSwapRequest{
					FromUserID: "1", ToUserID: "1", SkillOffered: "React", SkillWanted: "Go",
				})
				return err
			},
		},
		{
			name: "unknown request status",
			op:   "internal.store.UpdateSwapRequestStatus",
			call: func() error {
				_, _, err := s.UpdateSwapRequestStatus(ctx, "1", domain.RequestStatus("archived"))
				return err
			},
		},
		{
			name: "rating out of range",
			op:   "internal.store.CompleteSwap",
			call: func() error {
				_, err := s.CompleteSwap(ctx, "1", domain.SwapCompletion{Rating1: intPtr(9)})
				return err
			},
		},
		{
			name: "self report",
			op:   "internal.store.CreateReport",
			call: func() error {
				_, err := s.CreateReport(ctx, domain.NewReport{ReporterID: "2", ReportedUserID: "2", Reason: "Spam"})
				return err
			},
		},
		{
			name: "self rating",
			op:   "internal.store.CreateSwapRating",
			call: func() error {
				_, err := s.CreateSwapRating(ctx, domain.NewSwapRating{SwapID: "3", FromUserID: "1", ToUserID: "1", Rating: 5})
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()

			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.True(t, strings.HasPrefix(err.Error(), tc.op+": "), err.Error())
		})
	}
}
