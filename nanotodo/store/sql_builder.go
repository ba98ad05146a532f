package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

const kvTable = "kv"

// sqlBuilder wraps squirrel to provide safe SQL generation
type sqlBuilder struct {
	sq squirrel.StatementBuilderType
}

func newSQLBuilder() *sqlBuilder {
	return &sqlBuilder{
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// buildGet selects the value stored under key
func (b *sqlBuilder) buildGet(key string) (string, []interface{}, error) {
	return b.sq.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
}

// buildUpsert inserts or replaces the value stored under key
func (b *sqlBuilder) buildUpsert(key, value string, updatedAt int64) (string, []interface{}, error) {
	if key == "" {
		return "", nil, fmt.Errorf("no key specified for upsert")
	}
	return b.sq.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, updatedAt).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}
