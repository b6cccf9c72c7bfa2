package store

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/YusovID/skillswap-service/internal/domain"
)

// Dataset is the full state held by the store: six independent collections,
// each persisted under its own key in insertion order.
type Dataset struct {
	Users    []domain.User
	Requests []domain.SwapRequest
	Swaps    []domain.ActiveSwap
	Reports  []domain.Report
	Messages []domain.PlatformMessage
	Ratings  []domain.SwapRating
}

func (d *Dataset) clone() *Dataset {
	return &Dataset{
		Users:    slices.Clone(d.Users),
		Requests: slices.Clone(d.Requests),
		Swaps:    slices.Clone(d.Swaps),
		Reports:  slices.Clone(d.Reports),
		Messages: slices.Clone(d.Messages),
		Ratings:  slices.Clone(d.Ratings),
	}
}

func (d *Dataset) userIdx(id string) int {
	return slices.IndexFunc(d.Users, func(u domain.User) bool { return u.ID == id })
}

func (d *Dataset) userByEmailIdx(email string) int {
	email = strings.TrimSpace(email)

	return slices.IndexFunc(d.Users, func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (d *Dataset) requestIdx(id string) int {
	return slices.IndexFunc(d.Requests, func(r domain.SwapRequest) bool { return r.ID == id })
}

func (d *Dataset) swapIdx(id string) int {
	return slices.IndexFunc(d.Swaps, func(s domain.ActiveSwap) bool { return s.ID == id })
}

func (d *Dataset) reportIdx(id string) int {
	return slices.IndexFunc(d.Reports, func(r domain.Report) bool { return r.ID == id })
}

type collectionKeys struct {
	users    string
	requests string
	swaps    string
	reports  string
	messages string
	ratings  string
}

func newCollectionKeys(prefix string) collectionKeys {
	return collectionKeys{
		users:    prefix + "_users",
		requests: prefix + "_requests",
		swaps:    prefix + "_swaps",
		reports:  prefix + "_reports",
		messages: prefix + "_messages",
		ratings:  prefix + "_ratings",
	}
}

func (k collectionKeys) all() []string {
	return []string{k.users, k.requests, k.swaps, k.reports, k.messages, k.ratings}
}

// collection binds one Dataset field to its persisted key.
type collection struct {
	key      string
	target   any
	encode   func() ([]byte, error)
	fromSeed func(seed *Dataset)
}

func (d *Dataset) collections(k collectionKeys) []collection {
	return []collection{
		bind(k.users, &d.Users, func(s *Dataset) []domain.User { return s.Users }),
		bind(k.requests, &d.Requests, func(s *Dataset) []domain.SwapRequest { return s.Requests }),
		bind(k.swaps, &d.Swaps, func(s *Dataset) []domain.ActiveSwap { return s.Swaps }),
		bind(k.reports, &d.Reports, func(s *Dataset) []domain.Report { return s.Reports }),
		bind(k.messages, &d.Messages, func(s *Dataset) []domain.PlatformMessage { return s.Messages }),
		bind(k.ratings, &d.Ratings, func(s *Dataset) []domain.SwapRating { return s.Ratings }),
	}
}

func bind[T any](key string, target *[]T, pick func(*Dataset) []T) collection {
	return collection{
		key:    key,
		target: target,
		encode: func() ([]byte, error) {
			if *target == nil {
				return []byte("[]"), nil
			}

			return json.Marshal(*target)
		},
		fromSeed: func(seed *Dataset) {
			*target = slices.Clone(pick(seed))
		},
	}
}

func copyUser(u domain.User) domain.User {
	u.SkillsOffered = slices.Clone(u.SkillsOffered)
	u.SkillsWanted = slices.Clone(u.SkillsWanted)

	return u
}

func copySwap(s domain.ActiveSwap) domain.ActiveSwap {
	s.Rating1 = clonePtr(s.Rating1)
	s.Rating2 = clonePtr(s.Rating2)
	s.CompletedAt = clonePtr(s.CompletedAt)

	return s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

// filter returns copies of the elements of src matching keep, never nil.
func filter[T any](src []T, keep func(T) bool, cp func(T) T) []T {
	out := make([]T, 0, len(src))

	for _, v := range src {
		if keep(v) {
			out = append(out, cp(v))
		}
	}

	return out
}

func keepAll[T any](T) bool { return true }

func identity[T any](v T) T { return v }
