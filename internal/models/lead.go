package models

import "time"

// Lead is a trial-interest submission from the landing page.
type Lead struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	LabSize     string    `db:"lab_size" json:"lab_size"`
	Contact     string    `db:"contact" json:"contact"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}
