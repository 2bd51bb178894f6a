package cachestore

import (
	"context"
	"database/sql"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Dawichi/hexastats/internal/platform/cache"
	qb "github.com/Dawichi/hexastats/internal/platform/querybuilder"
)

const cacheEntriesTable = "cache_entries"

type cacheEntryModel struct {
	Key      string `db:"cache_key"`
	Value    []byte `db:"value"`
	StoredAt int64  `db:"stored_at"`
}

// SQLBackend keeps entries in the cache_entries table. The same queries run on postgres
// and sqlite; stored_at is unix nanoseconds so both dialects compare it the same way.
type SQLBackend struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLBackend(db *sqlx.DB, dialect Dialect) *SQLBackend {
	return &SQLBackend{db: db, dialect: dialect}
}

func (b *SQLBackend) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	query, args, err := qb.Select("cache_key", "value", "stored_at").
		From(cacheEntriesTable).
		Where(qb.Eq("cache_key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return cache.Entry{}, false, crerr.Wrap(err, "build select cache entry query")
	}

	var row cacheEntryModel
	if err := b.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return cache.Entry{}, false, nil
		}
		return cache.Entry{}, false, crerr.Wrapf(err, "get cache entry %s from %s", key, b.dialect)
	}

	return cache.Entry{Value: row.Value, StoredAt: time.Unix(0, row.StoredAt)}, true, nil
}

func (b *SQLBackend) Set(ctx context.Context, key string, entry cache.Entry) error {
	insert, err := qb.InsertModel(cacheEntriesTable, cacheEntryModel{
		Key:      key,
		Value:    entry.Value,
		StoredAt: entry.StoredAt.UnixNano(),
	})
	if err != nil {
		return crerr.Wrap(err, "build cache entry model")
	}
	query, args, err := insert.OnConflictUpdate("cache_key").ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build upsert cache entry query")
	}

	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert cache entry %s into %s", key, b.dialect)
	}
	return nil
}

func (b *SQLBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := qb.DeleteFrom(cacheEntriesTable).
		Where(qb.InStrings("cache_key", keys)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete cache entries query")
	}

	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete cache entries from %s", b.dialect)
	}
	return nil
}

func (b *SQLBackend) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(cacheEntriesTable).
		Where(qb.Lt("stored_at", olderThan.UnixNano())).
		ToSQL()
	if err != nil {
		return 0, crerr.Wrap(err, "build prune cache entries query")
	}

	result, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, crerr.Wrapf(err, "prune cache entries from %s", b.dialect)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, crerr.Wrap(err, "count pruned cache entries")
	}
	return removed, nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}
