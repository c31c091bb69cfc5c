package users

import "time"

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	ImageURL   string    `json:"imageUrl"`
	Industry   *string   `json:"industry"`
	Experience *int      `json:"experience"`
	Skills     []string  `json:"skills"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Onboarded reports whether the user has completed onboarding. An industry is
// only ever set through the onboarding flow, so its presence is the marker.
func (u User) Onboarded() bool {
	return u.Industry != nil && *u.Industry != ""
}

// OnboardingUpdate is the profile payload applied when a user onboards.
type OnboardingUpdate struct {
	Industry   string
	Experience int
	Skills     []string
	Bio        string
}
