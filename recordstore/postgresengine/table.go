package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	colID        = "id"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
	sqlNow       = "NOW()"

	opList   = ".list"
	opGet    = ".get"
	opCreate = ".create"
	opUpdate = ".update"
	opDelete = ".delete"
	opCount  = ".count"
	opFilter = ".filter"
)

// table describes how records of one aggregate map to their table.
type table[T any] struct {
	name    string
	columns []any
	order   []exp.OrderedExpression
	scan    scanFunc[T]
}

func (t table[T]) selectStmt() *goqu.SelectDataset {
	return builder().
		From(t.name).
		Prepared(true).
		Select(t.columns...).
		Order(t.order...)
}

func (t table[T]) list(ctx context.Context, u *unitOfWork, where ...exp.Expression) ([]T, error) {
	action := t.name + opList
	if len(where) > 0 {
		action = t.name + opFilter
	}

	return queryRecords(ctx, u, action, recordstore.ErrQueryingRecordsFailed, t.selectStmt().Where(where...), t.scan)
}

func (t table[T]) get(ctx context.Context, u *unitOfWork, where exp.Expression) (T, bool, error) {
	stmt := t.selectStmt().Where(where).Limit(1)

	return queryFirst(ctx, u, t.name+opGet, recordstore.ErrQueryingRecordsFailed, stmt, t.scan)
}

func (t table[T]) getByID(ctx context.Context, u *unitOfWork, id uuid.UUID) (T, bool, error) {
	return t.get(ctx, u, goqu.C(colID).Eq(id.String()))
}

func (t table[T]) insert(ctx context.Context, u *unitOfWork, row goqu.Record) (T, error) {
	stmt := builder().
		Insert(t.name).
		Prepared(true).
		Rows(row).
		Returning(t.columns...)

	record, _, err := queryFirst(ctx, u, t.name+opCreate, recordstore.ErrWritingRecordFailed, stmt, t.scan)

	return record, err
}

func (t table[T]) update(ctx context.Context, u *unitOfWork, id uuid.UUID, set goqu.Record) (T, error) {
	set[colUpdatedAt] = goqu.L(sqlNow)

	stmt := builder().
		Update(t.name).
		Prepared(true).
		Set(set).
		Where(goqu.C(colID).Eq(id.String())).
		Returning(t.columns...)

	record, found, err := queryFirst(ctx, u, t.name+opUpdate, recordstore.ErrWritingRecordFailed, stmt, t.scan)
	if err != nil {
		return record, err
	}

	if !found {
		return record, recordstore.ErrRecordNotFound
	}

	return record, nil
}

func (t table[T]) delete(ctx context.Context, u *unitOfWork, id uuid.UUID) error {
	stmt := builder().
		Delete(t.name).
		Prepared(true).
		Where(goqu.C(colID).Eq(id.String()))

	_, err := execStatement(ctx, u, t.name+opDelete, stmt)

	return err
}

func (t table[T]) count(ctx context.Context, u *unitOfWork, where ...exp.Expression) (int, error) {
	stmt := builder().
		From(t.name).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(where...)

	counts, err := queryRecords(ctx, u, t.name+opCount, recordstore.ErrQueryingRecordsFailed, stmt, scanCount)
	if err != nil {
		return 0, err
	}

	if len(counts) == 0 {
		return 0, nil
	}

	return int(counts[0]), nil
}

// idOrNew returns id, or a fresh UUID when id is the zero value.
func idOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

// nullable turns a nil pointer into SQL NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}

	return *v
}
