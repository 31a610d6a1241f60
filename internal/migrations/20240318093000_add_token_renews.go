package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddTokenRenews, downAddTokenRenews)
}

// Existing rows predate renewal tracking, so their renewal date is
// unknown. Backfilling with modified + 1 day forces a refresh on the
// next use of each account, which re-establishes the real date.
func upAddTokenRenews(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	ALTER TABLE instagram_accounts ADD COLUMN token_renews TIMESTAMP WITH TIME ZONE;
	UPDATE instagram_accounts SET token_renews = modified + INTERVAL '1 day';
	ALTER TABLE instagram_accounts ALTER COLUMN token_renews SET NOT NULL;
	`)
	if err != nil {
		return err
	}
	return nil
}

func downAddTokenRenews(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	ALTER TABLE instagram_accounts DROP COLUMN token_renews;
	`)
	if err != nil {
		return err
	}
	return nil
}
