package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeAIClient struct {
	reply string
	err   error
	delay time.Duration
}

func (f *fakeAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeAIClient) Close() error { return nil }

func rankingCandidates() []TutorCandidate {
	return []TutorCandidate{
		{ID: uuid.New(), Name: "Alice Wanjiru", Subjects: []string{"Algorithms"}, Rating: 4.2},
		{ID: uuid.New(), Name: "Brian Otieno", Subjects: []string{"Calculus"}, Rating: 4.9},
		{ID: uuid.New(), Name: "Cynthia Mwangi", Subjects: []string{"Algorithms", "Statistics"}, Rating: 4.7},
		{ID: uuid.New(), Name: "David Kiptoo", Subjects: []string{"Physics"}, Rating: 3.5},
		{ID: uuid.New(), Name: "Esther Njeri", Subjects: []string{"Chemistry"}, Rating: 4.8},
		{ID: uuid.New(), Name: "Felix Omondi", Subjects: []string{"Data Structures and Algorithms"}, Rating: 3.8},
	}
}

func algorithmsProfile() PreferenceProfile {
	return PreferenceProfile{
		FrequentSubjects:  []string{"Algorithms"},
		PreferredLocation: "Library",
		PreferredTimeSlot: "Evening",
		TutorRatings:      map[uuid.UUID]float64{},
		SubjectsNeedHelp:  []string{},
	}
}

func TestFallbackRankSubjectMatchFirst(t *testing.T) {
	ranked := FallbackRank(algorithmsProfile(), rankingCandidates())

	if len(ranked) != 5 {
		t.Fatalf("ranked %d candidates, want 5", len(ranked))
	}

	// Subject matches (incl. the bidirectional substring hit on
	// "Data Structures and Algorithms") come first, by rating descending.
	wantOrder := []string{"Cynthia Mwangi", "Alice Wanjiru", "Felix Omondi", "Brian Otieno", "Esther Njeri"}
	for i, want := range wantOrder {
		if ranked[i].Name != want {
			t.Fatalf("ranked[%d] = %s, want %s (full order %+v)", i, ranked[i].Name, want, ranked)
		}
	}
}

func TestFallbackRankNoPreferences(t *testing.T) {
	profile := PreferenceProfile{PreferredLocation: "Any", PreferredTimeSlot: "Any"}
	ranked := FallbackRank(profile, rankingCandidates())

	if len(ranked) != 5 {
		t.Fatalf("ranked %d candidates, want 5", len(ranked))
	}
	if ranked[0].Name != "Brian Otieno" {
		t.Fatalf("ranked[0] = %s, want highest-rated Brian Otieno", ranked[0].Name)
	}
}

func TestFallbackRankSmallPool(t *testing.T) {
	candidates := rankingCandidates()[:2]
	ranked := FallbackRank(algorithmsProfile(), candidates)

	if len(ranked) != 2 {
		t.Fatalf("ranked %d candidates, want 2", len(ranked))
	}
}

func TestRankNilClientUsesFallback(t *testing.T) {
	engine := &RecommendationEngine{client: nil, timeout: aiCallTimeout}

	result := engine.rank(context.Background(), algorithmsProfile(), rankingCandidates(), nil)

	if len(result.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5", len(result.Recommendations))
	}
	if result.Recommendations[0].Name != "Cynthia Mwangi" {
		t.Fatalf("top recommendation = %s, want Cynthia Mwangi", result.Recommendations[0].Name)
	}
}

func TestRankTimeoutUsesFallback(t *testing.T) {
	engine := &RecommendationEngine{
		client:  &fakeAIClient{reply: "RECOMMENDED_TUTORS: David", delay: 5 * time.Second},
		timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	result := engine.rank(context.Background(), algorithmsProfile(), rankingCandidates(), nil)
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Fatalf("rank took %v, should return promptly after the %v timeout", elapsed, engine.timeout)
	}
	if len(result.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5 from fallback", len(result.Recommendations))
	}
	if result.Recommendations[0].Name != "Cynthia Mwangi" {
		t.Fatalf("late AI result was not discarded, top = %s", result.Recommendations[0].Name)
	}
}

func TestRankClientErrorUsesFallback(t *testing.T) {
	engine := &RecommendationEngine{
		client:  &fakeAIClient{err: context.DeadlineExceeded},
		timeout: aiCallTimeout,
	}

	result := engine.rank(context.Background(), algorithmsProfile(), rankingCandidates(), nil)

	if len(result.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5 from fallback", len(result.Recommendations))
	}
}

func TestRankUnparseableReplyUsesFallback(t *testing.T) {
	engine := &RecommendationEngine{
		client:  &fakeAIClient{reply: "I would suggest booking with whoever is free."},
		timeout: aiCallTimeout,
	}

	result := engine.rank(context.Background(), algorithmsProfile(), rankingCandidates(), nil)

	if len(result.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5 from fallback", len(result.Recommendations))
	}
	if result.Recommendations[0].Name != "Cynthia Mwangi" {
		t.Fatalf("top recommendation = %s, want Cynthia Mwangi", result.Recommendations[0].Name)
	}
}

func TestRankPartialReplyPadsWithHighestRated(t *testing.T) {
	reply := "RECOMMENDED_TUTORS: Alice, David, Professor Nobody\n" +
		"- Alice Wanjiru: great algorithms tutor\n" +
		"- David Kiptoo: knows his physics\n"
	engine := &RecommendationEngine{
		client:  &fakeAIClient{reply: reply},
		timeout: aiCallTimeout,
	}

	result := engine.rank(context.Background(), algorithmsProfile(), rankingCandidates(), nil)

	if len(result.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5 after padding", len(result.Recommendations))
	}

	if result.Recommendations[0].Name != "Alice Wanjiru" || result.Recommendations[1].Name != "David Kiptoo" {
		t.Fatalf("AI-picked tutors not preserved in order: %+v", result.Recommendations)
	}
	if result.Recommendations[0].Reason != "Alice Wanjiru: great algorithms tutor" {
		t.Errorf("reason = %q, want the extracted bullet", result.Recommendations[0].Reason)
	}

	// Padding: highest-rated remaining are Brian (4.9), Esther (4.8),
	// Cynthia (4.7); no duplicates.
	seen := map[uuid.UUID]bool{}
	for _, recommendation := range result.Recommendations {
		if seen[recommendation.TutorID] {
			t.Fatalf("duplicate tutor in recommendations: %s", recommendation.Name)
		}
		seen[recommendation.TutorID] = true
	}
	if result.Recommendations[2].Name != "Brian Otieno" || result.Recommendations[3].Name != "Esther Njeri" {
		t.Fatalf("padding order wrong: %+v", result.Recommendations)
	}
}

func TestPadRecommendationsSmallPool(t *testing.T) {
	candidates := rankingCandidates()[:3]
	recommendations := padRecommendations([]TutorRecommendation{}, candidates)

	if len(recommendations) != 3 {
		t.Fatalf("got %d recommendations, want all 3 available", len(recommendations))
	}
}

func TestAvailabilityCountQueryGroupsPerTutor(t *testing.T) {
	db := dryRunDB(t)

	var rows []struct {
		TutorID uuid.UUID
		Slots   int
	}
	stmt := availabilityCountQuery(db, []uuid.UUID{uuid.New(), uuid.New()}).Scan(&rows).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "GROUP BY") || !strings.Contains(sql, "tutor_id") {
		t.Fatalf("expected one grouped count over the pool, got %q", sql)
	}
}

func TestCountAvailabilitySlotsEmptyPool(t *testing.T) {
	counts, err := countAvailabilitySlots(dryRunDB(t), nil)
	if err != nil {
		t.Fatalf("countAvailabilitySlots(nil) error: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("counts = %v, want empty", counts)
	}
}

func TestSplitSubjectList(t *testing.T) {
	raw := " Algorithms, Calculus ,,  Statistics "
	subjects := splitSubjectList(&raw)

	want := []string{"Algorithms", "Calculus", "Statistics"}
	if len(subjects) != len(want) {
		t.Fatalf("splitSubjectList = %v, want %v", subjects, want)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Fatalf("splitSubjectList = %v, want %v", subjects, want)
		}
	}

	if got := splitSubjectList(nil); len(got) != 0 {
		t.Fatalf("splitSubjectList(nil) = %v, want empty", got)
	}
}
