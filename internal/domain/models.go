package domain

import (
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether a request may move from s to next.
// Only pending requests move, and never back to pending.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == RequestPending && next != RequestPending && next.Valid()
}

type SwapStatus string

const (
	SwapActive    SwapStatus = "active"
	SwapCompleted SwapStatus = "completed"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportResolved, ReportDismissed:
		return true
	}

	return false
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	return s == ReportPending && next != ReportPending && next.Valid()
}

// DefaultTotalSessions is the session count of a freshly accepted swap.
const DefaultTotalSessions = 4

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Location       string    `json:"location,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Availability   string    `json:"availability,omitempty"`
	ProfilePhoto   string    `json:"profile_photo,omitempty"`
	IsPublic       bool      `json:"is_public"`
	IsAdmin        bool      `json:"is_admin"`
	Rating         float64   `json:"rating"`
	CompletedSwaps int       `json:"completed_swaps"`
	SkillsOffered  []string  `json:"skills_offered"`
	SkillsWanted   []string  `json:"skills_wanted"`
	JoinDate       time.Time `json:"join_date"`
	LastActive     time.Time `json:"last_active"`
}

// NewUser is the signup payload; id, dates, rating and swap count are
// assigned by the store.
type NewUser struct {
	Name          string   `json:"name" validate:"notblank,max=100"`
	Email         string   `json:"email" validate:"required,email"`
	Location      string   `json:"location" validate:"max=200"`
	Bio           string   `json:"bio" validate:"max=1000"`
	Availability  string   `json:"availability" validate:"max=100"`
	ProfilePhoto  string   `json:"profile_photo" validate:"omitempty,url"`
	IsPublic      bool     `json:"is_public"`
	IsAdmin       bool     `json:"is_admin"`
	SkillsOffered []string `json:"skills_offered" validate:"dive,max=100"`
	SkillsWanted  []string `json:"skills_wanted" validate:"dive,max=100"`
}

// UserUpdate carries a partial profile edit; nil fields are left untouched.
type UserUpdate struct {
	Name          *string   `json:"name,omitempty" validate:"omitnil,notblank,max=100"`
	Email         *string   `json:"email,omitempty" validate:"omitnil,email"`
	Location      *string   `json:"location,omitempty" validate:"omitnil,max=200"`
	Bio           *string   `json:"bio,omitempty" validate:"omitnil,max=1000"`
	Availability  *string   `json:"availability,omitempty" validate:"omitnil,max=100"`
	ProfilePhoto  *string   `json:"profile_photo,omitempty"`
	IsPublic      *bool     `json:"is_public,omitempty"`
	SkillsOffered *[]string `json:"skills_offered,omitempty" validate:"omitnil,dive,max=100"`
	SkillsWanted  *[]string `json:"skills_wanted,omitempty" validate:"omitnil,dive,max=100"`
}

type SwapRequest struct {
	ID           string        `json:"id"`
	FromUserID   string        `json:"from_user_id"`
	ToUserID     string        `json:"to_user_id"`
	SkillOffered string        `json:"skill_offered"`
	SkillWanted  string        `json:"skill_wanted"`
	Message      string        `json:"message"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

type NewSwapRequest struct {
	FromUserID   string `json:"from_user_id" validate:"required,custom_id"`
	ToUserID     string `json:"to_user_id" validate:"required,custom_id"`
	SkillOffered string `json:"skill_offered" validate:"notblank,max=100"`
	SkillWanted  string `json:"skill_wanted" validate:"notblank,max=100"`
	Message      string `json:"message" validate:"max=2000"`
}

type ActiveSwap struct {
	ID                string     `json:"id"`
	RequestID         string     `json:"request_id,omitempty"`
	User1ID           string     `json:"user1_id"`
	User2ID           string     `json:"user2_id"`
	Skill1Offered     string     `json:"skill1_offered"`
	Skill2Offered     string     `json:"skill2_offered"`
	StartDate         time.Time  `json:"start_date"`
	Status            SwapStatus `json:"status"`
	SessionsCompleted int        `json:"sessions_completed"`
	TotalSessions     int        `json:"total_sessions"`
	Rating1           *int       `json:"rating1,omitempty"`
	Rating2           *int       `json:"rating2,omitempty"`
	Feedback1         string     `json:"feedback1,omitempty"`
	Feedback2         string     `json:"feedback2,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// HasParticipant reports whether userID is one of the two sides.
func (s ActiveSwap) HasParticipant(userID string) bool {
	return s.User1ID == userID || s.User2ID == userID
}

// SwapProgress is a partial progress update; nil fields are left untouched.
// The session total is fixed when the swap is created.
type SwapProgress struct {
	SessionsCompleted *int `json:"sessions_completed,omitempty"`
}

// SwapCompletion is the payload of one completion call. Rating1/Feedback1 are
// received by user1, Rating2/Feedback2 by user2.
type SwapCompletion struct {
	Rating1   *int    `json:"rating1,omitempty" validate:"omitnil,min=1,max=5"`
	Rating2   *int    `json:"rating2,omitempty" validate:"omitnil,min=1,max=5"`
	Feedback1 *string `json:"feedback1,omitempty" validate:"omitnil,max=2000"`
	Feedback2 *string `json:"feedback2,omitempty" validate:"omitnil,max=2000"`
}

type Report struct {
	ID             string       `json:"id"`
	ReporterID     string       `json:"reporter_id"`
	ReportedUserID string       `json:"reported_user_id"`
	Reason         string       `json:"reason"`
	Description    string       `json:"description"`
	CreatedAt      time.Time    `json:"created_at"`
	Status         ReportStatus `json:"status"`
}

type NewReport struct {
	ReporterID     string `json:"reporter_id" validate:"required,custom_id"`
	ReportedUserID string `json:"reported_user_id" validate:"required,custom_id"`
	Reason         string `json:"reason" validate:"notblank,max=200"`
	Description    string `json:"description" validate:"max=2000"`
}

type PlatformMessage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	SentBy    string    `json:"sent_by"`
}

type NewPlatformMessage struct {
	Title   string `json:"title" validate:"notblank,max=200"`
	Content string `json:"content" validate:"notblank,max=5000"`
	SentBy  string `json:"sent_by" validate:"required,custom_id"`
}

type SwapRating struct {
	ID         string    `json:"id"`
	SwapID     string    `json:"swap_id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Rating     int       `json:"rating"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}

type NewSwapRating struct {
	SwapID     string `json:"swap_id" validate:"required,custom_id"`
	FromUserID string `json:"from_user_id" validate:"required,custom_id"`
	ToUserID   string `json:"to_user_id" validate:"required,custom_id"`
	Rating     int    `json:"rating" validate:"min=1,max=5"`
	Feedback   string `json:"feedback" validate:"max=2000"`
}

type Stats struct {
	TotalUsers     int     `json:"total_users"`
	ActiveSwaps    int     `json:"active_swaps"`
	PendingReports int     `json:"pending_reports"`
	CompletedSwaps int     `json:"completed_swaps"`
	TotalRatings   int     `json:"total_ratings"`
	AverageRating  float64 `json:"average_rating"`
}

// ActivityExport is the admin dump of platform activity.
type ActivityExport struct {
	Users    []User        `json:"users"`
	Swaps    []ActiveSwap  `json:"swaps"`
	Requests []SwapRequest `json:"requests"`
	Ratings  []SwapRating  `json:"ratings"`
	Reports  []Report      `json:"reports"`
}

// NormalizeSkills trims entries, drops empty ones and removes
// case-insensitive duplicates, keeping the first spelling.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))

	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, s)
	}

	return out
}
