// Command seed populates the flat-file datastore with demo accounts,
// availability templates and appointments for local development.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/store"
)

func main() {
	var (
		path     string
		password string
		force    bool
	)
	flag.StringVar(&path, "store", "./db/db.json", "Path to the datastore file")
	flag.StringVar(&password, "password", "password123", "Password for every seeded account")
	flag.BoolVar(&force, "force", false, "Overwrite an existing datastore")
	flag.Parse()

	if _, err := os.Stat(path); err == nil && !force {
		log.Fatalf("%s already exists, pass -force to overwrite", path)
	}
	if force {
		_ = os.Remove(path)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	st := store.New(path, nil)
	err = st.Update(context.Background(), func(state *store.State) error {
		state.Profiles = []models.Profile{
			{ID: "admin-1", Name: "System Admin", Email: "admin@tutorhub.edu", PasswordHash: string(hash), Role: models.RoleAdmin},
			{ID: "tutor-1", Name: "Dr. Chen", Email: "chen@tutorhub.edu", PasswordHash: string(hash), Role: models.RoleTutor, Department: "math", Specialization: "calculus", ScheduleVisibility: models.VisibilityPublic},
			{ID: "tutor-2", Name: "Dr. Pham", Email: "pham@tutorhub.edu", PasswordHash: string(hash), Role: models.RoleTutor, Department: "physics", Specialization: "mechanics", ScheduleVisibility: models.VisibilityPublic},
			{ID: "student-1", Name: "Minh", Email: "minh@tutorhub.edu", PasswordHash: string(hash), Role: models.RoleStudent, Major: "computer science"},
			{ID: "student-2", Name: "Lan", Email: "lan@tutorhub.edu", PasswordHash: string(hash), Role: models.RoleStudent, Major: "physics"},
		}
		state.TutorSchedule = map[string]models.WeeklySchedule{
			"tutor-1": {
				{Day: models.Monday, Slots: []string{"09:00", "10:00", "14:00"}},
				{Day: models.Wednesday, Slots: []string{"09:00", "11:00"}},
			},
			"tutor-2": {
				{Day: models.Tuesday, Slots: []string{"13:00", "14:00"}},
				{Day: models.Friday, Slots: []string{"10:00"}},
			},
		}
		state.Appointments = []models.Appointment{
			{ID: "apt-seed-1", TutorID: "tutor-1", TutorName: "Dr. Chen", StudentID: "student-1", StudentName: "Minh", Subject: "calculus", Date: "2025-11-24", Time: "09:00", Type: models.TypeOnline, Status: models.StatusBooked},
			{ID: "apt-seed-2", TutorID: "tutor-1", TutorName: "Dr. Chen", Subject: "calculus", Date: "2025-11-26", Time: "11:00", Type: models.TypeOnline, Status: models.StatusAvailable},
			{ID: "apt-seed-3", TutorID: "tutor-2", TutorName: "Dr. Pham", StudentID: "student-2", StudentName: "Lan", Subject: "mechanics", Date: "2025-11-25", Time: "13:00", Type: models.TypeOffline, Status: models.StatusCompleted},
		}
		state.Departments = []models.Department{
			{ID: "dept-1", Name: "math"},
			{ID: "dept-2", Name: "physics"},
		}
		return nil
	})
	if err != nil {
		log.Fatalf("seed datastore: %v", err)
	}

	log.Printf("seeded %s (all accounts use password %q)", path, password)
}
