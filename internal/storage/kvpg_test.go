package storage_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/nexus-shop/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestPostgresKV_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM kv_state WHERE key = \\$1").
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":"1"}]`)))

	kv := storage.NewPostgresKV(db)
	value, err := kv.Load(context.Background(), "products")
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_LoadMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM kv_state WHERE key = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	kv := storage.NewPostgresKV(db)
	_, err = kv.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_SaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO kv_state").
		WithArgs("orders", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	kv := storage.NewPostgresKV(db)
	assert.NoError(t, kv.Save(context.Background(), "orders", []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM kv_state WHERE key = \\$1").
		WithArgs("cart:s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	kv := storage.NewPostgresKV(db)
	assert.NoError(t, kv.Delete(context.Background(), "cart:s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
