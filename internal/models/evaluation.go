package models

// Evaluation is a student's rating of a completed session.
type Evaluation struct {
	ID        string `json:"id"`
	TutorID   string `json:"tutorId"`
	StudentID string `json:"studentId"`
	SessionID string `json:"sessionId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}
