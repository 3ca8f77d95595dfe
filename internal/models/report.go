package models

import "time"

// Report is one student's daily submission. At most one row exists per
// (student_name, report_date); re-submission overwrites the previous text
// and refreshes created_at. report_date is a fixed UTC+8 business-day key
// selected server-side, carried as YYYY-MM-DD.
type Report struct {
	ID           int64     `db:"id" json:"id"`
	StudentName  string    `db:"student_name" json:"student_name"`
	ReportDate   string    `db:"report_date" json:"report_date"`
	WorkDone     string    `db:"work_done" json:"work_done"`
	Problems     string    `db:"problems" json:"problems"`
	PlanTomorrow string    `db:"plan_tomorrow" json:"plan_tomorrow"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// StatusSummary partitions the roster into submitted / not-submitted for
// one date. Derived, never stored.
type StatusSummary struct {
	Date           string   `json:"date"`
	Total          int      `json:"total"`
	SubmittedCount int      `json:"submitted_count"`
	Submitted      []string `json:"submitted"`
	NotSubmitted   []string `json:"not_submitted"`
}

// StudentStatus answers "has this one student submitted today". A missing
// report is not an error, just submitted=false.
type StudentStatus struct {
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submittedAt"`
}
