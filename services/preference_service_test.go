package services

import (
	"testing"

	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
)

func completedSession(subject, timeSlot, location string) models.Session {
	return models.Session{
		Subject:  subject,
		TimeSlot: timeSlot,
		Location: location,
		Status:   models.SessionCompleted,
	}
}

func TestTimeBucket(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"06:00", "Morning"},
		{"11:59", "Morning"},
		{"12:00", "Afternoon"},
		{"16:30", "Afternoon"},
		{"17:00", "Evening"},
		{"20:59", "Evening"},
		{"21:00", "Night"},
		{"02:15", "Night"},
		{"05:59", "Night"},
		{"not a time", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TimeBucket(tt.label); got != tt.want {
			t.Errorf("TimeBucket(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestAnalyzePreferencesEmptyHistory(t *testing.T) {
	profile := AnalyzePreferences(nil)

	if len(profile.FrequentSubjects) != 0 {
		t.Errorf("FrequentSubjects = %v, want empty", profile.FrequentSubjects)
	}
	if profile.PreferredLocation != "Any" {
		t.Errorf("PreferredLocation = %q, want Any", profile.PreferredLocation)
	}
	if profile.PreferredTimeSlot != "Any" {
		t.Errorf("PreferredTimeSlot = %q, want Any", profile.PreferredTimeSlot)
	}
}

func TestAnalyzePreferencesSubjectFrequency(t *testing.T) {
	sessions := []models.Session{
		completedSession("Algorithms", "10:00", "Library"),
		completedSession("Calculus", "10:00", "Library"),
		completedSession("Algorithms", "14:00", "Library"),
		completedSession("Statistics", "10:00", "Cafe"),
		completedSession("Calculus", "10:00", "Library"),
		completedSession("Physics", "10:00", "Library"),
	}

	profile := AnalyzePreferences(sessions)

	want := []string{"Algorithms", "Calculus", "Statistics"}
	if len(profile.FrequentSubjects) != len(want) {
		t.Fatalf("FrequentSubjects = %v, want %v", profile.FrequentSubjects, want)
	}
	for i := range want {
		if profile.FrequentSubjects[i] != want[i] {
			t.Fatalf("FrequentSubjects = %v, want %v", profile.FrequentSubjects, want)
		}
	}
}

func TestAnalyzePreferencesTieBrokenByRecency(t *testing.T) {
	// Statistics and Physics both occur once; Statistics appears first in
	// the newest-first input so it wins the third slot.
	sessions := []models.Session{
		completedSession("Algorithms", "10:00", "Library"),
		completedSession("Statistics", "10:00", "Library"),
		completedSession("Physics", "10:00", "Library"),
		completedSession("Algorithms", "10:00", "Library"),
		completedSession("Calculus", "10:00", "Library"),
		completedSession("Calculus", "10:00", "Library"),
	}

	profile := AnalyzePreferences(sessions)

	if len(profile.FrequentSubjects) != 3 || profile.FrequentSubjects[2] != "Statistics" {
		t.Fatalf("FrequentSubjects = %v, want third slot Statistics", profile.FrequentSubjects)
	}
}

func TestAnalyzePreferencesTimeAndLocation(t *testing.T) {
	sessions := []models.Session{
		completedSession("Algorithms", "18:00", "Library"),
		completedSession("Algorithms", "19:30", "Cafe"),
		completedSession("Algorithms", "09:00", "Library"),
	}

	profile := AnalyzePreferences(sessions)

	if profile.PreferredTimeSlot != "Evening" {
		t.Errorf("PreferredTimeSlot = %q, want Evening", profile.PreferredTimeSlot)
	}
	if profile.PreferredLocation != "Library" {
		t.Errorf("PreferredLocation = %q, want Library", profile.PreferredLocation)
	}
}

func TestAnalyzePreferencesTutorRatings(t *testing.T) {
	tutorA := uuid.New()
	tutorB := uuid.New()
	five, four, three := 5, 4, 3

	sessions := []models.Session{
		{Subject: "Algorithms", TimeSlot: "10:00", Status: models.SessionCompleted, TutorID: tutorA, Rating: &five},
		{Subject: "Algorithms", TimeSlot: "10:00", Status: models.SessionCompleted, TutorID: tutorA, Rating: &four},
		{Subject: "Calculus", TimeSlot: "10:00", Status: models.SessionCompleted, TutorID: tutorB, Rating: &three},
		{Subject: "Calculus", TimeSlot: "10:00", Status: models.SessionCompleted, TutorID: tutorB},
	}

	profile := AnalyzePreferences(sessions)

	if got := profile.TutorRatings[tutorA]; got != 4.5 {
		t.Errorf("TutorRatings[tutorA] = %v, want 4.5", got)
	}
	if got := profile.TutorRatings[tutorB]; got != 3.0 {
		t.Errorf("TutorRatings[tutorB] = %v, want 3.0", got)
	}
}

func TestAnalyzePreferencesHistoryCap(t *testing.T) {
	var sessions []models.Session
	for i := 0; i < analyzerHistoryLimit; i++ {
		sessions = append(sessions, completedSession("Algorithms", "10:00", "Library"))
	}
	// Beyond the cap: would flip the preference if counted.
	for i := 0; i < analyzerHistoryLimit+5; i++ {
		sessions = append(sessions, completedSession("Chemistry", "22:00", "Lab"))
	}

	profile := AnalyzePreferences(sessions)

	if len(profile.FrequentSubjects) == 0 || profile.FrequentSubjects[0] != "Algorithms" {
		t.Fatalf("FrequentSubjects = %v, want Algorithms first", profile.FrequentSubjects)
	}
	if profile.PreferredLocation != "Library" {
		t.Errorf("PreferredLocation = %q, want Library", profile.PreferredLocation)
	}
}
