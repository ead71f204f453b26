package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

func newTestItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	l := logger.Nop()
	repo := &itemRepository{
		DB:     newDB(db, "pgx", sq.Dollar, NewPostgresErrorClassifier(), l),
		logger: l,
	}
	return repo, mock, db
}

func ptr[T any](v T) *T { return &v }

var itemRowColumns = []string{"id", "name", "description", "price", "owner_id", "created_at", "updated_at"}

func TestItemRepository_CreateItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	item := models.Item{Name: "Write report", Price: ptr(10.5), CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO items (name,description,price,owner_id,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id")).
		WithArgs("Write report", nil, 10.5, nil, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	created, err := repo.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "Write report", created.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_CreateItem_DBError(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO items").WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateItem(context.Background(), models.Item{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestItemRepository_GetItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, owner_id, created_at, updated_at FROM items WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(3, "Task", nil, 99.99, 42, now, now))

	item, err := repo.GetItem(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ID)
	assert.Nil(t, item.Description)
	require.NotNil(t, item.Price)
	assert.Equal(t, 99.99, *item.Price)
	require.NotNil(t, item.OwnerID)
	assert.Equal(t, int64(42), *item.OwnerID)
}

func TestItemRepository_GetItem_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM items").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	_, err := repo.GetItem(context.Background(), 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemRepository_ListItems(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, owner_id, created_at, updated_at FROM items ORDER BY id LIMIT 10 OFFSET 5")).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(6, "a", "desc", nil, nil, now, now).
			AddRow(7, "b", nil, nil, nil, now, now))

	items, err := repo.ListItems(context.Background(), models.ItemListOptions{Limit: 10, Offset: 5})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "desc", *items[0].Description)
	assert.Equal(t, int64(7), items[1].ID)
}

func TestItemRepository_ListItems_QueryError(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM items").WillReturnError(errors.New("boom"))

	_, err := repo.ListItems(context.Background(), models.ItemListOptions{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestItemRepository_ListItems_RowError(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM items").
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(1, "a", nil, nil, nil, now, now).
			RowError(0, errors.New("row broke")))

	_, err := repo.ListItems(context.Background(), models.ItemListOptions{})
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestItemRepository_UpdateItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	created := time.Now().Add(-time.Hour).UTC()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE items SET name = $1, description = $2, price = $3, updated_at = $4 WHERE id = $5 RETURNING owner_id, created_at")).
		WithArgs("Renamed", "notes", nil, now, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "created_at"}).AddRow(11, created))

	updated, err := repo.UpdateItem(context.Background(), models.Item{ID: 5, Name: "Renamed", Description: ptr("notes"), UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt)
	require.NotNil(t, updated.OwnerID)
	assert.Equal(t, int64(11), *updated.OwnerID)
}

func TestItemRepository_UpdateItem_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE items").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "created_at"}))

	_, err := repo.UpdateItem(context.Background(), models.Item{ID: 404, Name: "x"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemRepository_DeleteItem(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrItemNotFound},
		{name: "exec error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestItemRepo(t)
			defer db.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items WHERE id = $1")).WithArgs(int64(9))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.DeleteItem(context.Background(), 9)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBuildSelectItemQuery_SQLitePlaceholders(t *testing.T) {
	query, args, err := buildSelectItemQuery(sq.StatementBuilder.PlaceholderFormat(sq.Question), 1)
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE id = ?")
	assert.Equal(t, []any{int64(1)}, args)
}

func TestBuildInsertAuditEntriesQuery_EmptyBatch(t *testing.T) {
	_, _, err := buildInsertAuditEntriesQuery(sq.StatementBuilder, nil)
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}
