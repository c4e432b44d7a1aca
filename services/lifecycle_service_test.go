package services

import (
	"strings"
	"testing"

	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds SQL without a database connection so query shape can be
// asserted in tests.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost user=peer_tutor dbname=peer_tutor"), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

func TestSessionReadLocksRow(t *testing.T) {
	db := dryRunDB(t)

	// Transition and AttachReview read the session through forUpdate so two
	// racing writers serialize; the second validates against the committed
	// status (or the committed rating) instead of a stale snapshot.
	var session models.Session
	stmt := forUpdate(db).Find(&session, "id = ?", uuid.New()).Statement

	if sql := stmt.SQL.String(); !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("expected row lock in query, got %q", sql)
	}
}
