package dto

// DayStat is the submission count for one business day of the week.
type DayStat struct {
	Date           string `json:"date"`
	Label          string `json:"label"`
	SubmittedCount int    `json:"submitted_count"`
	Total          int    `json:"total"`
}

// StudentSummary rolls one student's week up.
type StudentSummary struct {
	Name          string   `json:"name"`
	DaysSubmitted int      `json:"days_submitted"`
	Tags          []string `json:"tags"`
	ProblemDays   int      `json:"problem_days"`
}

// TagCount is one activity tag's frequency across the week.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ProblemEntry is one reported problem, kept in day order.
type ProblemEntry struct {
	StudentName string `json:"student_name"`
	Date        string `json:"date"`
	Problems    string `json:"problems"`
}

// WeeklyDigestResponse is the server-side rendition of the dashboard's
// weekly summary tab.
type WeeklyDigestResponse struct {
	WeekStart    string           `json:"week_start"`
	WeekEnd      string           `json:"week_end"`
	Days         []DayStat        `json:"days"`
	Students     []StudentSummary `json:"students"`
	TagFrequency []TagCount       `json:"tag_frequency"`
	Problems     []ProblemEntry   `json:"problems"`
	WeekRate     int              `json:"week_rate"`
}

// ExportRequest asks for a rendered weekly export.
type ExportRequest struct {
	Date   string `json:"date" binding:"omitempty,reportdate"`
	Format string `json:"format" binding:"required,oneof=csv pdf"`
}

// ExportResponse points at the rendered file via a signed, expiring URL.
type ExportResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
