package store

import (
	"context"

	"github.com/YusovID/skillswap-service/internal/domain"
)

// GetStats computes the platform counters from the current state.
func (s *Store) GetStats(ctx context.Context) domain.Stats {
	var st domain.Stats

	s.read(func(d *Dataset) {
		st.TotalUsers = len(d.Users)

		for _, sw := range d.Swaps {
			switch sw.Status {
			case domain.SwapActive:
				st.ActiveSwaps++
			case domain.SwapCompleted:
				st.CompletedSwaps++
			}
		}

		for _, r := range d.Reports {
			if r.Status == domain.ReportPending {
				st.PendingReports++
			}
		}

		st.TotalRatings = len(d.Ratings)
		if st.TotalRatings == 0 {
			return
		}

		sum := 0
		for _, r := range d.Ratings {
			sum += r.Rating
		}

		st.AverageRating = float64(sum) / float64(st.TotalRatings)
	})

	return st
}

// ExportUserActivity dumps users, swaps, requests, ratings and reports for
// the admin download.
func (s *Store) ExportUserActivity(ctx context.Context) domain.ActivityExport {
	var out domain.ActivityExport

	s.read(func(d *Dataset) {
		out = domain.ActivityExport{
			Users:    filter(d.Users, keepAll[domain.User], copyUser),
			Swaps:    filter(d.Swaps, keepAll[domain.ActiveSwap], copySwap),
			Requests: filter(d.Requests, keepAll[domain.SwapRequest], identity[domain.SwapRequest]),
			Ratings:  filter(d.Ratings, keepAll[domain.SwapRating], identity[domain.SwapRating]),
			Reports:  filter(d.Reports, keepAll[domain.Report], identity[domain.Report]),
		}
	})

	return out
}
