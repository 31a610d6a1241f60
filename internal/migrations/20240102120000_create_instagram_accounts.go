package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateInstagramAccounts, downCreateInstagramAccounts)
}

func upCreateInstagramAccounts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE instagram_accounts (
		username VARCHAR PRIMARY KEY,
		token TEXT NOT NULL,
		user_id VARCHAR NOT NULL,
		account_type VARCHAR NOT NULL DEFAULT '',
		media_count INTEGER NOT NULL DEFAULT 0,
		created TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		modified TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateInstagramAccounts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE instagram_accounts;
	`)
	if err != nil {
		return err
	}
	return nil
}
