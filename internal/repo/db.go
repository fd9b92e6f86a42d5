package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/pkg/dbutil"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

// base wraps the handle so every gendry statement is rebound for the driver
// before it reaches database/sql.
type base struct {
	db   *sql.DB
	bind int
}

func newBase(h *db.Handle) base {
	return base{db: h.DB, bind: h.BindType()}
}

func (b base) exec(ctx context.Context, query string, args []interface{}) (sql.Result, error) {
	query, args = dbutil.Finalize(b.bind, query, args)
	return b.db.ExecContext(ctx, query, args...)
}

func (b base) query(ctx context.Context, query string, args []interface{}) (*sql.Rows, error) {
	query, args = dbutil.Finalize(b.bind, query, args)
	return b.db.QueryContext(ctx, query, args...)
}

func (b base) insert(ctx context.Context, table string, data map[string]interface{}) error {
	sqlStr, args, err := builder.BuildInsert(table, []map[string]interface{}{data})
	if err != nil {
		return err
	}
	if _, err := b.exec(ctx, sqlStr, args); err != nil {
		if dbutil.IsConflict(err) {
			return fmt.Errorf("insert %s: %w", table, appErr.ErrConflict)
		}
		return err
	}
	return nil
}

// update applies the change set to the single row matched by where and
// reports ErrNotFound when nothing matched.
func (b base) update(ctx context.Context, table string, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate(table, where, update)
	if err != nil {
		return err
	}
	result, err := b.exec(ctx, sqlStr, args)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (b base) delete(ctx context.Context, table string, where map[string]interface{}) error {
	sqlStr, args, err := builder.BuildDelete(table, where)
	if err != nil {
		return err
	}
	result, err := b.exec(ctx, sqlStr, args)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// detachFolder clears folder linkage for every row of table in the folder.
func (b base) detachFolder(ctx context.Context, table, column, userID, folderID string, mtime int64) error {
	where := map[string]interface{}{
		"user_id": userID,
		column:    folderID,
	}
	update := map[string]interface{}{
		column:  "",
		"mtime": mtime,
	}
	sqlStr, args, err := builder.BuildUpdate(table, where, update)
	if err != nil {
		return err
	}
	_, err = b.exec(ctx, sqlStr, args)
	return err
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
