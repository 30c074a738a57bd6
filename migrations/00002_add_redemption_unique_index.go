package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upAddRedemptionUniqueIndex, downAddRedemptionUniqueIndex)
}

// The at-most-once redemption rule per (user, coupon) pair lives in the
// database, not in application checks: concurrent redeems serialize on
// this index and the loser sees a unique violation.
func upAddRedemptionUniqueIndex(tx *sql.Tx) error {
	query := `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_redemptions_user_coupon
		ON redemptions (user_id, coupon_id)
	`
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create redemption unique index: %w", err)
	}
	return nil
}

func downAddRedemptionUniqueIndex(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP INDEX IF EXISTS idx_redemptions_user_coupon"); err != nil {
		return fmt.Errorf("failed to drop redemption unique index: %w", err)
	}
	return nil
}
