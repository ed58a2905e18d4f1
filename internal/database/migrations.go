package database

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunMigrations runs any custom data migrations after schema changes
func RunMigrations(db *gorm.DB) error {
	if err := migrateSetCodes(db); err != nil {
		return err
	}
	if err := backfillDeckIDs(db); err != nil {
		return err
	}
	return nil
}

// migrateSetCodes uppercases stored set codes so they agree with the
// canonical card identifiers. Safe to run multiple times.
func migrateSetCodes(db *gorm.DB) error {
	if !db.Migrator().HasTable("deck_cards") {
		return nil
	}

	result := db.Exec(`UPDATE deck_cards SET "set" = UPPER("set") WHERE "set" != UPPER("set")`)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Normalized set codes on %d deck card rows", result.RowsAffected)
	}
	return nil
}

// backfillDeckIDs assigns generated IDs to decks imported before IDs were
// required. Rows created since always carry one.
func backfillDeckIDs(db *gorm.DB) error {
	if !db.Migrator().HasTable("decks") {
		return nil
	}

	var emptyIDs []string
	db.Raw(`SELECT rowid FROM decks WHERE id IS NULL OR id = ''`).Scan(&emptyIDs)
	for _, rowid := range emptyIDs {
		result := db.Exec(`UPDATE decks SET id = ? WHERE rowid = ?`, uuid.New().String(), rowid)
		if result.Error != nil {
			log.Printf("Warning: failed to backfill deck id for row %s: %v", rowid, result.Error)
		}
	}
	if len(emptyIDs) > 0 {
		log.Printf("Backfilled ids for %d decks", len(emptyIDs))
	}
	return nil
}
