package services

import (
	"strings"
)

// TutorListMarker prefixes the line in the AI reply that carries the ranked,
// comma-separated tutor names. Without it the whole reply is treated as
// empty and the fallback path takes over.
const TutorListMarker = "RECOMMENDED_TUTORS:"

// NamesMatch reports whether one name contains the other, case-insensitively.
// Best-effort by design: AI output rarely reproduces names verbatim, so the
// bidirectional substring check is the documented accuracy ceiling here.
func NamesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ParseRecommendedTutors extracts the ranked tutor list from free-form AI
// text and resolves each name against the candidate pool. Unmatched names
// and duplicate matches are skipped. Never fails on malformed text.
func ParseRecommendedTutors(raw string, candidates []TutorCandidate) []TutorCandidate {
	markerLine := ""
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToUpper(trimmed), TutorListMarker) {
			markerLine = trimmed[len(TutorListMarker):]
			break
		}
	}
	if markerLine == "" {
		return nil
	}

	var picked []TutorCandidate
	seen := map[string]bool{}
	for _, part := range strings.Split(markerLine, ",") {
		name := strings.Trim(strings.TrimSpace(part), "[]()*\"'.")
		if name == "" {
			continue
		}

		for _, candidate := range candidates {
			if seen[candidate.ID.String()] || !NamesMatch(candidate.Name, name) {
				continue
			}
			seen[candidate.ID.String()] = true
			picked = append(picked, candidate)
			break
		}
	}

	return picked
}

// ExtractReason returns the first bullet line of the AI reply that mentions
// the tutor, stripped of its bullet prefix. Empty when nothing matches.
func ExtractReason(raw, tutorName string) string {
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "•") {
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), strings.ToLower(tutorName)) {
			return strings.TrimLeft(trimmed, "-*• \t")
		}
	}
	return ""
}
