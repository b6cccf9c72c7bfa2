package store

import (
	"time"

	"github.com/YusovID/skillswap-service/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

// DefaultSeed returns a fresh copy of the demo dataset loaded when nothing
// has been persisted yet.
func DefaultSeed() *Dataset {
	return &Dataset{
		Users: []domain.User{
			{
				ID:             "1",
				Name:           "Priya Sharma",
				Email:          "priya@example.com",
				Location:       "Mumbai, Maharashtra",
				Bio:            "Full-stack developer passionate about teaching and learning new technologies.",
				Availability:   "Weekends",
				IsPublic:       true,
				Rating:         4.8,
				CompletedSwaps: 12,
				SkillsOffered:  []string{"React", "Node.js", "Python", "UI/UX Design"},
				SkillsWanted:   []string{"Machine Learning", "DevOps", "Mobile Development"},
				JoinDate:       day(2024, time.January, 15),
				LastActive:     at(2024, time.June, 10, 10, 0),
			},
			{
				ID:             "2",
				Name:           "Rahul Patel",
				Email:          "rahul@example.com",
				Location:       "Bangalore, Karnataka",
				Bio:            "Music producer and guitarist looking to expand my skills.",
				Availability:   "Evenings",
				IsPublic:       true,
				Rating:         4.7,
				CompletedSwaps: 8,
				SkillsOffered:  []string{"Guitar", "Music Theory", "Recording"},
				SkillsWanted:   []string{"Spanish", "Cooking", "Photography"},
				JoinDate:       day(2024, time.February, 20),
				LastActive:     at(2024, time.June, 9, 12, 0),
			},
			{
				ID:             "3",
				Name:           "Anjali Singh",
				Email:          "anjali@example.com",
				Location:       "Delhi, NCR",
				Bio:            "Yoga instructor and wellness coach.",
				Availability:   "Mornings",
				IsPublic:       true,
				Rating:         4.8,
				CompletedSwaps: 15,
				SkillsOffered:  []string{"Yoga", "Meditation", "Nutrition"},
				SkillsWanted:   []string{"Web Design", "Marketing", "Writing"},
				JoinDate:       day(2024, time.January, 10),
				LastActive:     at(2024, time.June, 10, 11, 30),
			},
			{
				ID:             "4",
				Name:           "Arjun Kumar",
				Email:          "arjun@example.com",
				Location:       "Hyderabad, Telangana",
				Bio:            "Data scientist and machine learning enthusiast.",
				Availability:   "Flexible",
				IsPublic:       true,
				Rating:         4.6,
				CompletedSwaps: 6,
				SkillsOffered:  []string{"Python", "Data Science", "Machine Learning"},
				SkillsWanted:   []string{"Japanese", "Cooking", "Gardening"},
				JoinDate:       day(2024, time.March, 1),
				LastActive:     at(2024, time.June, 10, 9, 0),
			},
			{
				ID:             "5",
				Name:           "Meera Reddy",
				Email:          "meera@example.com",
				Location:       "Chennai, Tamil Nadu",
				Bio:            "Creative designer and photographer looking to expand technical skills.",
				Availability:   "Weekends",
				IsPublic:       true,
				Rating:         4.7,
				CompletedSwaps: 9,
				SkillsOffered:  []string{"Graphic Design", "Photography", "Adobe Creative Suite"},
				SkillsWanted:   []string{"Web Development", "JavaScript", "WordPress"},
				JoinDate:       day(2024, time.February, 15),
				LastActive:     at(2024, time.June, 10, 11, 0),
			},
			{
				ID:             "6",
				Name:           "Vikram Malhotra",
				Email:          "vikram@example.com",
				Location:       "Pune, Maharashtra",
				Bio:            "Language tutor and cultural exchange enthusiast.",
				Availability:   "Evenings",
				IsPublic:       true,
				Rating:         4.9,
				CompletedSwaps: 18,
				SkillsOffered:  []string{"Hindi", "English", "French"},
				SkillsWanted:   []string{"German", "Cooking", "Music"},
				JoinDate:       day(2024, time.January, 5),
				LastActive:     at(2024, time.June, 10, 10, 0),
			},
			{
				ID:             "7",
				Name:           "Sanjay Verma",
				Email:          "sanjay@example.com",
				Location:       "Kolkata, West Bengal",
				Bio:            "Finance expert and chess enthusiast.",
				Availability:   "Weekdays",
				IsPublic:       true,
				Rating:         4.5,
				CompletedSwaps: 7,
				SkillsOffered:  []string{"Finance", "Chess", "Excel"},
				SkillsWanted:   []string{"Public Speaking", "Cooking", "Digital Marketing"},
				JoinDate:       day(2024, time.March, 10),
				LastActive:     at(2024, time.June, 10, 8, 0),
			},
			{
				ID:            "admin",
				Name:          "Admin User",
				Email:         "admin@skillswap.example",
				Location:      "Mumbai, Maharashtra",
				Bio:           "Platform administrator",
				Availability:  "Weekdays",
				IsAdmin:       true,
				Rating:        5.0,
				SkillsOffered: []string{"Platform Management"},
				SkillsWanted:  []string{},
				JoinDate:      day(2024, time.January, 1),
				LastActive:    at(2024, time.June, 10, 11, 0),
			},
		},
		Requests: []domain.SwapRequest{
			{
				ID:           "1",
				FromUserID:   "2",
				ToUserID:     "1",
				SkillOffered: "Guitar",
				SkillWanted:  "JavaScript",
				Message:      "Hi Priya! I'd love to learn JavaScript from you. I can teach you advanced guitar techniques in return.",
				Status:       domain.RequestPending,
				CreatedAt:    at(2024, time.June, 10, 10, 0),
			},
			{
				ID:           "2",
				FromUserID:   "3",
				ToUserID:     "1",
				SkillOffered: "Yoga",
				SkillWanted:  "React",
				Message:      "Your React skills look amazing! I'd love to trade yoga sessions for React tutoring.",
				Status:       domain.RequestPending,
				CreatedAt:    at(2024, time.June, 10, 9, 0),
			},
			{
				ID:           "3",
				FromUserID:   "1",
				ToUserID:     "4",
				SkillOffered: "Web Design",
				SkillWanted:  "Python",
				Message:      "Hi Arjun! I saw you're looking to learn web design. I can help with that in exchange for Python tutoring.",
				Status:       domain.RequestAccepted,
				CreatedAt:    at(2024, time.June, 8, 12, 0),
			},
			{
				ID:           "4",
				FromUserID:   "5",
				ToUserID:     "6",
				SkillOffered: "Photography",
				SkillWanted:  "Hindi",
				Message:      "Hi Vikram! I'd love to learn Hindi from you. I can teach you photography techniques in return.",
				Status:       domain.RequestPending,
				CreatedAt:    at(2024, time.June, 9, 12, 0),
			},
		},
		Swaps: []domain.ActiveSwap{
			{
				ID:                "1",
				RequestID:         "3",
				User1ID:           "1",
				User2ID:           "4",
				Skill1Offered:     "Web Design",
				Skill2Offered:     "Python",
				StartDate:         day(2024, time.June, 3),
				Status:            domain.SwapActive,
				SessionsCompleted: 2,
				TotalSessions:     4,
			},
			{
				ID:                "2",
				User1ID:           "3",
				User2ID:           "5",
				Skill1Offered:     "Yoga",
				Skill2Offered:     "Graphic Design",
				StartDate:         day(2024, time.June, 7),
				Status:            domain.SwapActive,
				SessionsCompleted: 1,
				TotalSessions:     6,
			},
			{
				ID:                "3",
				User1ID:           "4",
				User2ID:           "1",
				Skill1Offered:     "Machine Learning",
				Skill2Offered:     "React",
				StartDate:         day(2024, time.April, 20),
				Status:            domain.SwapCompleted,
				SessionsCompleted: 4,
				TotalSessions:     4,
				Rating1:           intPtr(5),
				Rating2:           intPtr(4),
				Feedback1:         "Excellent teaching style! Arjun was very patient and explained complex concepts clearly.",
				Feedback2:         "Great learning experience. Priya is knowledgeable and organized.",
			},
		},
		Reports: []domain.Report{
			{
				ID:             "1",
				ReporterID:     "1",
				ReportedUserID: "7",
				Reason:         "Inappropriate skill description",
				Description:    "User has listed skills that seem inappropriate for the platform",
				CreatedAt:      at(2024, time.June, 10, 10, 0),
				Status:         domain.ReportPending,
			},
			{
				ID:             "2",
				ReporterID:     "2",
				ReportedUserID: "5",
				Reason:         "No-show for scheduled session",
				Description:    "User did not show up for agreed skill swap session without notice",
				CreatedAt:      at(2024, time.June, 9, 12, 0),
				Status:         domain.ReportPending,
			},
		},
		Messages: []domain.PlatformMessage{},
		Ratings: []domain.SwapRating{
			{
				ID:         "1",
				SwapID:     "3",
				FromUserID: "1",
				ToUserID:   "4",
				Rating:     5,
				Feedback:   "Excellent teaching style! Arjun was very patient and explained complex concepts clearly.",
				CreatedAt:  day(2024, time.June, 3),
			},
			{
				ID:         "2",
				SwapID:     "3",
				FromUserID: "4",
				ToUserID:   "1",
				Rating:     4,
				Feedback:   "Great learning experience. Priya is knowledgeable and organized.",
				CreatedAt:  day(2024, time.June, 3),
			},
		},
	}
}
