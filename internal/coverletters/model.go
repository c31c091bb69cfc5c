package coverletters

import "time"

// StatusCompleted is the status set on successfully generated letters.
const StatusCompleted = "completed"

// CoverLetter is one generated letter for a specific job application.
type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	JobDescription string    `json:"jobDescription"`
	CompanyName    string    `json:"companyName"`
	JobTitle       string    `json:"jobTitle"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
