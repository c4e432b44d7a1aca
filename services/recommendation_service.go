package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/anjiri1684/peer_tutor/ai"
	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxRecommendations = 5
	aiCallTimeout      = 10 * time.Second
)

// TutorCandidate is the serialized view of one tutor that flows through the
// ranking paths and into the AI prompt.
type TutorCandidate struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Subjects          []string  `json:"subjects"`
	Rating            float64   `json:"rating"`
	TotalSessions     int       `json:"total_sessions"`
	Badges            []string  `json:"badges"`
	AvailabilityCount int       `json:"availability_count"`
}

type TutorRecommendation struct {
	TutorID  uuid.UUID `json:"tutor_id"`
	Name     string    `json:"name"`
	Subjects []string  `json:"subjects"`
	Rating   float64   `json:"rating"`
	Reason   string    `json:"reason"`
}

type RecommendationResult struct {
	Recommendations []TutorRecommendation `json:"recommendations"`
	Reasoning       string                `json:"reasoning"`
	Preferences     PreferenceProfile     `json:"preferences"`
}

// RecommendationEngine ranks candidate tutors for a student, preferring the
// generative model when one is configured and degrading to the rule-based
// ranking on timeout, call failure or unparseable output. The client is a
// constructed dependency so tests can substitute a fake.
type RecommendationEngine struct {
	client  ai.Client
	timeout time.Duration
}

func NewRecommendationEngine(client ai.Client) *RecommendationEngine {
	return &RecommendationEngine{client: client, timeout: aiCallTimeout}
}

// Recommend builds the student's preference profile and returns up to five
// ranked tutors. The only user-visible "failure" is an empty candidate pool,
// which yields an empty list, not an error.
func (e *RecommendationEngine) Recommend(ctx context.Context, studentID uuid.UUID) (RecommendationResult, error) {
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecommendationResult{}, ErrUserNotFound
		}
		return RecommendationResult{}, err
	}

	var history []models.Session
	if err := database.DB.
		Where("student_id = ? AND status = ?", studentID, models.SessionCompleted).
		Order("date desc, created_at desc").
		Limit(analyzerHistoryLimit).
		Find(&history).Error; err != nil {
		return RecommendationResult{}, err
	}

	profile := AnalyzePreferences(history)
	profile.SubjectsNeedHelp = splitSubjectList(student.SubjectsNeedHelp)

	candidates, err := loadCandidatePool(studentID)
	if err != nil {
		return RecommendationResult{}, err
	}
	if len(candidates) == 0 {
		return RecommendationResult{
			Recommendations: []TutorRecommendation{},
			Reasoning:       "No tutors are available on the platform yet.",
			Preferences:     profile,
		}, nil
	}

	return e.rank(ctx, profile, candidates, history), nil
}

// rank races the AI call against the engine timeout. A late result is
// discarded; the caller proceeds with the fallback immediately.
func (e *RecommendationEngine) rank(ctx context.Context, profile PreferenceProfile, candidates []TutorCandidate, history []models.Session) RecommendationResult {
	if e.client == nil {
		return fallbackResult(profile, candidates)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type aiReply struct {
		text string
		err  error
	}
	replyCh := make(chan aiReply, 1)
	prompt := buildPrompt(profile, candidates, history)

	go func() {
		text, err := e.client.Generate(ctx, prompt)
		replyCh <- aiReply{text: text, err: err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		log.Println("⚠️ AI ranking timed out, using rule-based ranking instead")
		return fallbackResult(profile, candidates)
	case reply := <-replyCh:
		if reply.err != nil {
			log.Printf("⚠️ AI ranking failed (%v), using rule-based ranking instead", reply.err)
			return fallbackResult(profile, candidates)
		}
		raw = reply.text
	}

	picked := ParseRecommendedTutors(raw, candidates)
	if len(picked) == 0 {
		log.Println("⚠️ AI reply carried no resolvable tutor list, using rule-based ranking instead")
		return fallbackResult(profile, candidates)
	}

	recommendations := make([]TutorRecommendation, 0, maxRecommendations)
	for _, candidate := range picked {
		if len(recommendations) == maxRecommendations {
			break
		}
		reason := ExtractReason(raw, candidate.Name)
		if reason == "" {
			reason = fmt.Sprintf("Matches your recent %s sessions.", strings.Join(profile.FrequentSubjects, ", "))
		}
		recommendations = append(recommendations, toRecommendation(candidate, reason))
	}

	recommendations = padRecommendations(recommendations, candidates)

	return RecommendationResult{
		Recommendations: recommendations,
		Reasoning:       "Personalized ranking generated from your session history and preferences.",
		Preferences:     profile,
	}
}

// FallbackRank is the deterministic AI-free ordering: candidates teaching
// one of the student's frequent subjects first, each group sorted by rating
// descending, capped at five.
func FallbackRank(profile PreferenceProfile, candidates []TutorCandidate) []TutorCandidate {
	var matched, rest []TutorCandidate
	for _, candidate := range candidates {
		if teachesFrequentSubject(profile.FrequentSubjects, candidate.Subjects) {
			matched = append(matched, candidate)
		} else {
			rest = append(rest, candidate)
		}
	}

	byRatingDesc(matched)
	byRatingDesc(rest)

	ranked := append(matched, rest...)
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked
}

func fallbackResult(profile PreferenceProfile, candidates []TutorCandidate) RecommendationResult {
	ranked := FallbackRank(profile, candidates)

	recommendations := make([]TutorRecommendation, 0, len(ranked))
	for _, candidate := range ranked {
		reason := "Highly rated tutor on the platform."
		if teachesFrequentSubject(profile.FrequentSubjects, candidate.Subjects) {
			reason = fmt.Sprintf("Teaches %s, one of your most booked subjects.", strings.Join(candidate.Subjects, ", "))
		}
		recommendations = append(recommendations, toRecommendation(candidate, reason))
	}

	return RecommendationResult{
		Recommendations: recommendations,
		Reasoning:       "Rule-based ranking from your booking history.",
		Preferences:     profile,
	}
}

// padRecommendations tops the list up to five with the highest-rated
// candidates not already present. No tutor appears twice.
func padRecommendations(recommendations []TutorRecommendation, candidates []TutorCandidate) []TutorRecommendation {
	if len(recommendations) >= maxRecommendations {
		return recommendations[:maxRecommendations]
	}

	included := map[uuid.UUID]bool{}
	for _, recommendation := range recommendations {
		included[recommendation.TutorID] = true
	}

	remaining := make([]TutorCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if !included[candidate.ID] {
			remaining = append(remaining, candidate)
		}
	}
	byRatingDesc(remaining)

	for _, candidate := range remaining {
		if len(recommendations) == maxRecommendations {
			break
		}
		recommendations = append(recommendations, toRecommendation(candidate, "Highly rated tutor on the platform."))
	}
	return recommendations
}

func toRecommendation(candidate TutorCandidate, reason string) TutorRecommendation {
	return TutorRecommendation{
		TutorID:  candidate.ID,
		Name:     candidate.Name,
		Subjects: candidate.Subjects,
		Rating:   candidate.Rating,
		Reason:   reason,
	}
}

func byRatingDesc(candidates []TutorCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rating > candidates[j].Rating
	})
}

// teachesFrequentSubject uses the same bidirectional substring semantics as
// the response parser, so "Math" matches "Mathematics" in either direction.
func teachesFrequentSubject(frequentSubjects, tutorSubjects []string) bool {
	for _, preferred := range frequentSubjects {
		for _, subject := range tutorSubjects {
			if NamesMatch(preferred, subject) {
				return true
			}
		}
	}
	return false
}

func buildPrompt(profile PreferenceProfile, candidates []TutorCandidate, history []models.Session) string {
	var sb strings.Builder

	sb.WriteString("You are a tutoring coordinator. Pick the 5 best tutors for this student.\n\n")
	sb.WriteString("Student preferences:\n")
	sb.WriteString(fmt.Sprintf("- Frequent subjects: %s\n", strings.Join(profile.FrequentSubjects, ", ")))
	sb.WriteString(fmt.Sprintf("- Subjects they need help with: %s\n", strings.Join(profile.SubjectsNeedHelp, ", ")))
	sb.WriteString(fmt.Sprintf("- Preferred location: %s\n", profile.PreferredLocation))
	sb.WriteString(fmt.Sprintf("- Preferred time of day: %s\n", profile.PreferredTimeSlot))

	if len(history) > 0 {
		sb.WriteString("\nRecent sessions (newest first):\n")
		for _, session := range history {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", session.Subject, session.Topic))
		}
	}

	sb.WriteString("\nAvailable tutors:\n")
	for _, candidate := range candidates {
		sb.WriteString(fmt.Sprintf("- %s | subjects: %s | rating: %.1f | sessions taught: %d | badges: %s | weekly availability slots: %d\n",
			candidate.Name,
			strings.Join(candidate.Subjects, ", "),
			candidate.Rating,
			candidate.TotalSessions,
			strings.Join(candidate.Badges, ", "),
			candidate.AvailabilityCount,
		))
	}

	sb.WriteString("\nReply with exactly one line starting with \"")
	sb.WriteString(TutorListMarker)
	sb.WriteString("\" followed by the 5 tutor names ranked best first, separated by commas.\n")
	sb.WriteString("Then add one bullet line per tutor, \"- <name>: <reason>\", explaining the match.\n")

	return sb.String()
}

func loadCandidatePool(studentID uuid.UUID) ([]TutorCandidate, error) {
	var tutors []models.User
	if err := database.DB.
		Preload("TutorProfile.Subjects").
		Preload("Badges").
		Where("is_tutor = ? AND is_active = ? AND id != ?", true, true, studentID).
		Find(&tutors).Error; err != nil {
		return nil, err
	}

	tutorIDs := make([]uuid.UUID, 0, len(tutors))
	for _, tutor := range tutors {
		if tutor.TutorProfile != nil {
			tutorIDs = append(tutorIDs, tutor.ID)
		}
	}
	slotCounts, err := countAvailabilitySlots(database.DB, tutorIDs)
	if err != nil {
		return nil, err
	}

	candidates := make([]TutorCandidate, 0, len(tutors))
	for _, tutor := range tutors {
		if tutor.TutorProfile == nil {
			continue
		}

		subjects := make([]string, 0, len(tutor.TutorProfile.Subjects))
		for _, subject := range tutor.TutorProfile.Subjects {
			subjects = append(subjects, subject.Name)
		}
		badges := make([]string, 0, len(tutor.Badges))
		for _, badge := range tutor.Badges {
			badges = append(badges, badge.Name)
		}

		candidates = append(candidates, TutorCandidate{
			ID:                tutor.ID,
			Name:              tutor.FullName,
			Subjects:          subjects,
			Rating:            tutor.TutorProfile.Rating,
			TotalSessions:     tutor.TutorProfile.TotalSessions,
			Badges:            badges,
			AvailabilityCount: slotCounts[tutor.ID],
		})
	}

	return candidates, nil
}

// availabilityCountQuery counts slots for the whole pool in one grouped
// query instead of one query per tutor.
func availabilityCountQuery(db *gorm.DB, tutorIDs []uuid.UUID) *gorm.DB {
	return db.Model(&models.AvailabilitySlot{}).
		Select("tutor_id, count(*) as slots").
		Where("tutor_id IN ?", tutorIDs).
		Group("tutor_id")
}

func countAvailabilitySlots(db *gorm.DB, tutorIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(tutorIDs))
	if len(tutorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TutorID uuid.UUID
		Slots   int
	}
	if err := availabilityCountQuery(db, tutorIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TutorID] = row.Slots
	}
	return counts, nil
}

func splitSubjectList(raw *string) []string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []string{}
	}

	var subjects []string
	for _, part := range strings.Split(*raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			subjects = append(subjects, trimmed)
		}
	}
	return subjects
}
