package models

// AppointmentStatus is the lifecycle state of a concrete dated slot.
type AppointmentStatus string

const (
	// StatusAvailable marks a tutor-declared open slot awaiting a student.
	StatusAvailable AppointmentStatus = "available"
	// StatusBooked marks a claimed session.
	StatusBooked AppointmentStatus = "booked"
	// StatusCompleted marks a finished session. Nothing transitions here
	// automatically; surrounding workflows set it.
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether the status is one of the known states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusCompleted:
		return true
	}
	return false
}

// AppointmentType distinguishes online from in-person sessions.
type AppointmentType string

const (
	TypeOnline  AppointmentType = "online"
	TypeOffline AppointmentType = "offline"
)

// Appointment is a concrete, dated record: either an open booking-eligible
// slot (no student) or an actual booked/completed session.
type Appointment struct {
	ID          string            `json:"id"`
	TutorID     string            `json:"tutorId"`
	TutorName   string            `json:"tutorName"`
	StudentID   string            `json:"studentId,omitempty"`
	StudentName string            `json:"studentName,omitempty"`
	Subject     string            `json:"subject"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Type        AppointmentType   `json:"type,omitempty"`
	Status      AppointmentStatus `json:"status"`
}

// AppointmentFilter narrows appointment listings. Empty fields match anything.
type AppointmentFilter struct {
	TutorID   string
	StudentID string
	Status    AppointmentStatus
	Date      string
	Time      string
}

// Matches reports whether the appointment satisfies every set filter field.
func (f AppointmentFilter) Matches(a Appointment) bool {
	if f.TutorID != "" && a.TutorID != f.TutorID {
		return false
	}
	if f.StudentID != "" && a.StudentID != f.StudentID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	if f.Time != "" && a.Time != f.Time {
		return false
	}
	return true
}
