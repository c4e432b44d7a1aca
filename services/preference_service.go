package services

import (
	"sort"
	"strings"
	"time"

	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
)

const (
	analyzerHistoryLimit = 10
	topSubjectCount      = 3
)

// PreferenceProfile is the ephemeral summary of a student's booking history.
// It is rebuilt on every recommendation request and never persisted.
type PreferenceProfile struct {
	FrequentSubjects  []string              `json:"frequent_subjects"`
	PreferredLocation string                `json:"preferred_location"`
	PreferredTimeSlot string                `json:"preferred_time_slot"`
	TutorRatings      map[uuid.UUID]float64 `json:"tutor_ratings"`
	SubjectsNeedHelp  []string              `json:"subjects_need_help"`
}

var timeBuckets = []string{"Morning", "Afternoon", "Evening", "Night"}

// TimeBucket maps a session's time-of-day label onto a coarse bucket:
// Morning [06:00,12:00), Afternoon [12:00,17:00), Evening [17:00,21:00),
// Night [21:00,06:00). Unparseable labels yield "".
func TimeBucket(label string) string {
	t, err := time.Parse("15:04", strings.TrimSpace(label))
	if err != nil {
		return ""
	}

	switch hour := t.Hour(); {
	case hour >= 6 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

// AnalyzePreferences derives a preference profile from the student's most
// recent completed sessions, expected newest first. Pure transformation, no
// I/O.
func AnalyzePreferences(sessions []models.Session) PreferenceProfile {
	if len(sessions) > analyzerHistoryLimit {
		sessions = sessions[:analyzerHistoryLimit]
	}

	profile := PreferenceProfile{
		FrequentSubjects:  []string{},
		PreferredLocation: "Any",
		PreferredTimeSlot: "Any",
		TutorRatings:      map[uuid.UUID]float64{},
		SubjectsNeedHelp:  []string{},
	}
	if len(sessions) == 0 {
		return profile
	}

	type subjectStat struct {
		name     string
		count    int
		firstIdx int
	}
	subjectStats := map[string]*subjectStat{}
	locationCounts := map[string]int{}
	locationFirst := map[string]int{}
	bucketCounts := map[string]int{}
	tutorRatings := map[uuid.UUID][]int{}

	for i, session := range sessions {
		key := strings.ToLower(session.Subject)
		if stat, ok := subjectStats[key]; ok {
			stat.count++
		} else {
			subjectStats[key] = &subjectStat{name: session.Subject, count: 1, firstIdx: i}
		}

		if session.Location != "" {
			if _, ok := locationCounts[session.Location]; !ok {
				locationFirst[session.Location] = i
			}
			locationCounts[session.Location]++
		}

		if bucket := TimeBucket(session.TimeSlot); bucket != "" {
			bucketCounts[bucket]++
		}

		if session.Rating != nil {
			tutorRatings[session.TutorID] = append(tutorRatings[session.TutorID], *session.Rating)
		}
	}

	stats := make([]*subjectStat, 0, len(subjectStats))
	for _, stat := range subjectStats {
		stats = append(stats, stat)
	}
	// Ties go to the subject seen first in the newest-first input.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].firstIdx < stats[j].firstIdx
	})
	for i := 0; i < len(stats) && i < topSubjectCount; i++ {
		profile.FrequentSubjects = append(profile.FrequentSubjects, stats[i].name)
	}

	bestLocation, bestLocationCount := "", 0
	for location, count := range locationCounts {
		if count > bestLocationCount ||
			(count == bestLocationCount && locationFirst[location] < locationFirst[bestLocation]) {
			bestLocation, bestLocationCount = location, count
		}
	}
	if bestLocation != "" {
		profile.PreferredLocation = bestLocation
	}

	bestBucket, bestBucketCount := "", 0
	for _, bucket := range timeBuckets {
		if bucketCounts[bucket] > bestBucketCount {
			bestBucket, bestBucketCount = bucket, bucketCounts[bucket]
		}
	}
	if bestBucket != "" {
		profile.PreferredTimeSlot = bestBucket
	}

	for tutorID, ratings := range tutorRatings {
		mean, _ := AggregateRatings(ratings)
		profile.TutorRatings[tutorID] = mean
	}

	return profile
}
