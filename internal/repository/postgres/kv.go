package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/repository"
	"github.com/YusovID/skillswap-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

const kvTable = "kv_store"

var _ repository.KeyValueStore = (*KVRepository)(nil)

// KVRepository keeps values in the kv_store table. Values are stored as
// JSONB, so they must be valid JSON documents.
type KVRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewKVRepository(db *sqlx.DB, log *slog.Logger) *KVRepository {
	return &KVRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type kvRow struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "internal.repository.postgres.Get"

	query, args, err := r.sq.Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var value []byte
	if err := r.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: key '%s'", apperrors.ErrNotFound, key)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return value, nil
}

func (r *KVRepository) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	const op = "internal.repository.postgres.GetMany"

	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := r.sq.Select("key", "value").
		From(kvTable).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []kvRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	for _, row := range rows {
		out[row.Key] = row.Value
	}

	return out, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetMany(ctx, map[string][]byte{key: value})
}

// SetMany upserts every entry inside a single transaction.
func (r *KVRepository) SetMany(ctx context.Context, entries map[string][]byte) error {
	const op = "internal.repository.postgres.SetMany"

	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	insert := r.sq.Insert(kvTable).Columns("key", "value", "updated_at")
	for _, k := range keys {
		// lib/pq sends []byte as bytea, which jsonb rejects.
		insert = insert.Values(k, string(entries[k]), sq.Expr("now()"))
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	return r.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: failed to execute upsert: %w", op, err)
		}

		return nil
	})
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	const op = "internal.repository.postgres.Delete"

	query, args, err := r.sq.Delete(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	return nil
}

func (r *KVRepository) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
