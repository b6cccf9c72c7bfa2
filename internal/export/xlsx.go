// Package export renders the admin activity export as an Excel workbook.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SheetUsers    = "Users"
	SheetRequests = "Requests"
	SheetSwaps    = "Swaps"
	SheetRatings  = "Ratings"
	SheetReports  = "Reports"
)

// Activity builds a workbook with one sheet per collection: a bold header
// row followed by one row per record.
func Activity(exp domain.ActivityExport) ([]byte, error) {
	const op = "internal.export.Activity"

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create header style: %w", op, err)
	}

	w := &workbook{f: f, headerStyle: headerStyle}

	writeSheet(w, SheetUsers,
		[]string{"ID", "Name", "Email", "Location", "Public", "Admin", "Rating", "Completed swaps", "Skills offered", "Skills wanted", "Joined", "Last active"},
		exp.Users,
		func(u domain.User) []any {
			return []any{
				u.ID, u.Name, u.Email, u.Location, u.IsPublic, u.IsAdmin, u.Rating, u.CompletedSwaps,
				strings.Join(u.SkillsOffered, ", "), strings.Join(u.SkillsWanted, ", "),
				stamp(u.JoinDate), stamp(u.LastActive),
			}
		})

	writeSheet(w, SheetRequests,
		[]string{"ID", "From", "To", "Skill offered", "Skill wanted", "Message", "Status", "Created"},
		exp.Requests,
		func(r domain.SwapRequest) []any {
			return []any{r.ID, r.FromUserID, r.ToUserID, r.SkillOffered, r.SkillWanted, r.Message, string(r.Status), stamp(r.CreatedAt)}
		})

	writeSheet(w, SheetSwaps,
		[]string{"ID", "Request", "User 1", "User 2", "Skill 1", "Skill 2", "Status", "Sessions", "Total sessions", "Rating 1", "Rating 2", "Started", "Completed"},
		exp.Swaps,
		func(s domain.ActiveSwap) []any {
			completed := ""
			if s.CompletedAt != nil {
				completed = stamp(*s.CompletedAt)
			}

			return []any{
				s.ID, s.RequestID, s.User1ID, s.User2ID, s.Skill1Offered, s.Skill2Offered, string(s.Status),
				s.SessionsCompleted, s.TotalSessions, optional(s.Rating1), optional(s.Rating2),
				stamp(s.StartDate), completed,
			}
		})

	writeSheet(w, SheetRatings,
		[]string{"ID", "Swap", "From", "To", "Rating", "Feedback", "Created"},
		exp.Ratings,
		func(r domain.SwapRating) []any {
			return []any{r.ID, r.SwapID, r.FromUserID, r.ToUserID, r.Rating, r.Feedback, stamp(r.CreatedAt)}
		})

	writeSheet(w, SheetReports,
		[]string{"ID", "Reporter", "Reported user", "Reason", "Description", "Status", "Created"},
		exp.Reports,
		func(r domain.Report) []any {
			return []any{r.ID, r.ReporterID, r.ReportedUserID, r.Reason, r.Description, string(r.Status), stamp(r.CreatedAt)}
		})

	if w.err != nil {
		return nil, fmt.Errorf("%s: %w", op, w.err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%s: failed to drop default sheet: %w", op, err)
	}

	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%s: failed to write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

// workbook remembers the first error so the sheets can be written without
// checking every call.
type workbook struct {
	f           *excelize.File
	headerStyle int
	err         error
}

func writeSheet[T any](w *workbook, name string, header []string, records []T, toRow func(T) []any) {
	if w.err != nil {
		return
	}

	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("failed to create sheet '%s': %w", name, err)
		return
	}

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}

	if err := w.f.SetSheetRow(name, "A1", &head); err != nil {
		w.err = fmt.Errorf("failed to write header of '%s': %w", name, err)
		return
	}

	if err := w.f.SetRowStyle(name, 1, 1, w.headerStyle); err != nil {
		w.err = fmt.Errorf("failed to style header of '%s': %w", name, err)
		return
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		w.err = err
		return
	}

	if err := w.f.SetColWidth(name, "A", lastCol, 18); err != nil {
		w.err = fmt.Errorf("failed to size columns of '%s': %w", name, err)
		return
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			w.err = err
			return
		}

		row := toRow(rec)
		if err := w.f.SetSheetRow(name, cell, &row); err != nil {
			w.err = fmt.Errorf("failed to write row %d of '%s': %w", i+2, name, err)
			return
		}
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

func optional(v *int) any {
	if v == nil {
		return ""
	}

	return *v
}
