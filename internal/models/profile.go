package models

// UserRole enumerates the application roles.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

// Visibility controls who may see a tutor's schedule or documents.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Profile is the canonical user record. The legacy datastore carried both a
// `profiles` and a `users` collection with drifting shapes; this schema keeps
// a single collection.
type Profile struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"passwordHash,omitempty"`
	Role                UserRole   `json:"role"`
	Avatar              string     `json:"avatar,omitempty"`
	Department          string     `json:"department,omitempty"`
	Major               string     `json:"major,omitempty"`
	Specialization      string     `json:"specialization,omitempty"`
	Rating              float64    `json:"rating,omitempty"`
	ScheduleVisibility  Visibility `json:"scheduleVisibility,omitempty"`
	DocumentsVisibility Visibility `json:"documentsVisibility,omitempty"`
}

// ProfileView is the API-facing projection of a profile. The password hash is
// persisted in the same JSON document we serve data from, so handlers must
// never return Profile directly.
type ProfileView struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                UserRole   `json:"role"`
	Avatar              string     `json:"avatar,omitempty"`
	Department          string     `json:"department,omitempty"`
	Major               string     `json:"major,omitempty"`
	Specialization      string     `json:"specialization,omitempty"`
	Rating              float64    `json:"rating,omitempty"`
	ScheduleVisibility  Visibility `json:"scheduleVisibility,omitempty"`
	DocumentsVisibility Visibility `json:"documentsVisibility,omitempty"`
}

// View strips credentials from the profile.
func (p Profile) View() ProfileView {
	return ProfileView{
		ID:                  p.ID,
		Name:                p.Name,
		Email:               p.Email,
		Role:                p.Role,
		Avatar:              p.Avatar,
		Department:          p.Department,
		Major:               p.Major,
		Specialization:      p.Specialization,
		Rating:              p.Rating,
		ScheduleVisibility:  p.ScheduleVisibility,
		DocumentsVisibility: p.DocumentsVisibility,
	}
}

// Department groups tutors for search filtering.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
