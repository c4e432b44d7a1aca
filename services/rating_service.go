package services

import (
	"math"

	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate locks the selected rows until the surrounding transaction
// commits, so concurrent writers against the same row serialize instead of
// validating against a stale read.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AggregateRatings computes the arithmetic mean of the given review ratings
// rounded to one decimal place, plus the review count. Idempotent over the
// same input.
func AggregateRatings(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10, len(ratings)
}

// RecomputeTutorRating rebuilds a tutor's rating and review count from the
// rated completed sessions on record. It locks the profile row so concurrent
// reviews for the same tutor serialize instead of losing updates. Must run
// inside the same transaction as the review write.
func RecomputeTutorRating(tx *gorm.DB, tutorID uuid.UUID) error {
	var profile models.TutorProfile
	if err := forUpdate(tx).First(&profile, "user_id = ?", tutorID).Error; err != nil {
		return err
	}

	var ratings []int
	if err := tx.Model(&models.Session{}).
		Where("tutor_id = ? AND status = ? AND rating IS NOT NULL", tutorID, models.SessionCompleted).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	rating, count := AggregateRatings(ratings)

	return tx.Model(&models.TutorProfile{}).Where("user_id = ?", tutorID).
		Updates(map[string]interface{}{"rating": rating, "review_count": count}).Error
}

// RecomputeTutorWorkload rebuilds TotalSessions and HoursTaught from the
// tutor's completed sessions. Recomputed from source rows rather than
// incremented so concurrent completions stay consistent.
func RecomputeTutorWorkload(tx *gorm.DB, tutorID uuid.UUID) error {
	var profile models.TutorProfile
	if err := forUpdate(tx).First(&profile, "user_id = ?", tutorID).Error; err != nil {
		return err
	}

	var totals struct {
		Count   int64
		Minutes int64
	}
	if err := tx.Model(&models.Session{}).
		Where("tutor_id = ? AND status = ?", tutorID, models.SessionCompleted).
		Select("count(*) as count, coalesce(sum(duration), 0) as minutes").
		Scan(&totals).Error; err != nil {
		return err
	}

	return tx.Model(&models.TutorProfile{}).Where("user_id = ?", tutorID).
		Updates(map[string]interface{}{
			"total_sessions": totals.Count,
			"hours_taught":   float64(totals.Minutes) / 60.0,
		}).Error
}
