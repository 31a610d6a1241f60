package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
)

const tableName = "instagram_accounts"

var sqBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{"username", "token", "user_id", "account_type", "media_count", "token_renews", "created", "modified"}

// selectAccounts orders by creation time so the default account stays
// the first one authorized, no matter which rows were touched since.
func selectAccounts() sq.SelectBuilder {
	return sqBuilder.
		Select(columns...).
		From(tableName).
		OrderBy("created ASC")
}

type Pgx struct {
	pg *pgxpool.Pool
}

func NewPgx(pg *pgxpool.Pool) *Pgx {
	return &Pgx{
		pg: pg,
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return p.getBy(ctx, sq.Eq{"username": username})
}

func (p *Pgx) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return p.getBy(ctx, sq.Eq{"user_id": userID})
}

func (p *Pgx) GetDefault(ctx context.Context) (*domain.Account, error) {
	return p.getBy(ctx, nil)
}

func (p *Pgx) getBy(ctx context.Context, where any) (*domain.Account, error) {
	builder := selectAccounts().Limit(1)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account query: %w", err)
	}

	var acc domain.Account
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&acc.Username,
		&acc.Token,
		&acc.UserID,
		&acc.AccountType,
		&acc.MediaCount,
		&acc.TokenRenews,
		&acc.Created,
		&acc.Modified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &acc, nil
}

func (p *Pgx) List(ctx context.Context) ([]*domain.Account, error) {
	query, args, err := selectAccounts().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account query: %w", err)
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var acc domain.Account
		err := rows.Scan(
			&acc.Username,
			&acc.Token,
			&acc.UserID,
			&acc.AccountType,
			&acc.MediaCount,
			&acc.TokenRenews,
			&acc.Created,
			&acc.Modified,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

func (p *Pgx) Create(ctx context.Context, acc domain.Account) error {
	query, args, err := sqBuilder.
		Insert(tableName).
		Columns(columns...).
		Values(
			acc.Username,
			acc.Token,
			acc.UserID,
			acc.AccountType,
			acc.MediaCount,
			acc.TokenRenews,
			time.Now(),
			time.Now(),
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build account insert: %w", err)
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		return errors.Join(err, ErrCannotCreate)
	}

	return nil
}

func (p *Pgx) UpdateToken(ctx context.Context, username, token string, renews time.Time) error {
	return p.update(ctx, username, map[string]any{
		"token":        token,
		"token_renews": renews,
	})
}

func (p *Pgx) UpdateMediaCount(ctx context.Context, username string, count int) error {
	return p.update(ctx, username, map[string]any{
		"media_count": count,
	})
}

func (p *Pgx) update(ctx context.Context, username string, values map[string]any) error {
	builder := sqBuilder.Update(tableName)
	for column, value := range values {
		builder = builder.Set(column, value)
	}
	query, args, err := builder.
		Set("modified", time.Now()).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build account update: %w", err)
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", username, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *Pgx) Delete(ctx context.Context, username string) error {
	query, args, err := sqBuilder.
		Delete(tableName).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build account delete: %w", err)
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", username, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
