package models

// CalendarSlot is the derived view of one occupied calendar cell.
type CalendarSlot struct {
	ID          string            `json:"id"`
	Subject     string            `json:"subject"`
	Status      AppointmentStatus `json:"status"`
	StudentName string            `json:"studentName,omitempty"`
	TutorName   string            `json:"tutorName,omitempty"`
}

// CalendarHour pairs an hour token with its resolved slot. A nil slot means
// the tutor never opened that hour as concrete availability; it is distinct
// from an "available" appointment awaiting a student.
type CalendarHour struct {
	Hour string        `json:"hour"`
	Slot *CalendarSlot `json:"slot"`
}

// CalendarDay is one dated column of the reconciled calendar.
type CalendarDay struct {
	Day   DayName        `json:"day"`
	Date  string         `json:"date"`
	Hours []CalendarHour `json:"hours"`
}
