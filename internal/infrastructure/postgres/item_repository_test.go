package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestItemRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO items (name) VALUES ($1) RETURNING id`)).
		WithArgs("Chairs").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), "Chairs")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_GetByID_NoRows(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, deletion_id FROM items WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	it, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, it)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_GetForUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	deletionID := int64(4)
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "deletion_id"}).
			AddRow(int64(3), "Tables", &deletionID))

	it, err := repo.GetForUpdate(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "Tables", it.Name)
	require.NotNil(t, it.DeletionID)
	assert.Equal(t, int64(4), *it.DeletionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ListActive(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	cols := []string{"id", "name", "count", "deletion_id", "comment"}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE i.deletion_id IS NULL`)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), "Chairs", int64(35), (*int64)(nil), "").
			AddRow(int64(2), "Beds", int64(43), (*int64)(nil), ""))

	list, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(35), list[0].Count)
	assert.Equal(t, "Beds", list[1].Name)
	assert.Nil(t, list[1].DeletionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ListDeleted_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE i.deletion_id IS NOT NULL`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "count", "deletion_id", "comment"}))

	list, err := repo.ListDeleted(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestItemRepo_GetStock(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	deletionID := int64(9)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE i.id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "count", "deletion_id", "comment"}).
			AddRow(int64(3), "Tables", int64(0), &deletionID, "agotado"))

	s, err := repo.GetStock(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "agotado", s.Comment)
	assert.Equal(t, int64(0), s.Count)
}

func TestItemRepo_UpdateName(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE items SET name = $2 WHERE id = $1`)).
		WithArgs(int64(1), "Sillas").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE items SET name = $2 WHERE id = $1`)).
		WithArgs(int64(50), "X").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.UpdateName(context.Background(), 1, "Sillas")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateName(context.Background(), 50, "X")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_SetDeletion_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	repo := NewItemRepository(mock)

	deletionID := int64(5)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE items SET deletion_id = $2 WHERE id = $1`)).
		WithArgs(int64(2), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	ok, err := repo.SetDeletion(context.Background(), 2, &deletionID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
