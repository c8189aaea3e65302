package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/idalopban/ComVida/internal/nutrient"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestCreateUser_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresUserDB(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("nutri", "hash", RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := r.CreateUser(context.Background(), "nutri", "hash", RoleUser)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresUserDB(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("admin", "hash", RoleAdmin).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := r.CreateUser(context.Background(), "admin", "hash", RoleAdmin)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetByLogin(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresUserDB(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, login, password, role, created_at FROM users`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password", "role", "created_at"}).
			AddRow(1, "admin", "hash", RoleAdmin, now))
	mock.ExpectQuery(`SELECT id, login, password, role, created_at FROM users`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	u, err := r.GetByLogin(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "hash", u.PasswordHash)

	_, err = r.GetByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresUserDB(db)

	mock.ExpectQuery(`SELECT id, login, role, created_at FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "role", "created_at"}).
			AddRow(1, "admin", RoleAdmin, time.Now()).
			AddRow(2, "nutri", RoleUser, time.Now()))

	users, err := r.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "nutri", users[1].Login)
	assert.Empty(t, users[1].PasswordHash)
}

func TestDeleteUser_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresUserDB(db)

	mock.ExpectExec(`DELETE FROM users`).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users`).WithArgs("nutri").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, r.DeleteUser(context.Background(), "ghost"), ErrNotFound)
	assert.NoError(t, r.DeleteUser(context.Background(), "nutri"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAndGetPatient(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresPatientDB(db)
	data := []byte(`{"nombre":"Ana Pérez"}`)

	mock.ExpectQuery(`INSERT INTO patients`).
		WithArgs(3, "ana_pérez", "Ana Pérez", data).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`SELECT id, slug, name, data, updated_at FROM patients`).
		WithArgs(3, "ana_pérez").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "data", "updated_at"}).
			AddRow(11, "ana_pérez", "Ana Pérez", data, time.Now()))

	id, err := r.SavePatient(context.Background(), 3, "ana_pérez", "Ana Pérez", data)
	require.NoError(t, err)
	assert.Equal(t, 11, id)

	p, err := r.GetPatient(context.Background(), 3, "ana_pérez")
	require.NoError(t, err)
	assert.Equal(t, 3, p.OwnerID)
	assert.JSONEq(t, string(data), string(p.Data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPatients_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresPatientDB(db)

	mock.ExpectQuery(`SELECT slug, name, updated_at FROM patients`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "name", "updated_at"}))

	list, err := r.ListPatients(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Len(t, list, 0)
}

func TestDeletePatient_OtherOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresPatientDB(db)

	mock.ExpectExec(`DELETE FROM patients`).WithArgs(4, "ana").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, r.DeletePatient(context.Background(), 4, "ana"), ErrNotFound)
}

func TestSearchFoods(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresFoodDB(db)

	mock.ExpectQuery(`SELECT code, name, nutrients FROM foods WHERE code ILIKE`).
		WithArgs(`%arroz\_%`, 5).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "nutrients"}).
			AddRow("A001", "Arroz blanco", []byte(`{"kcal":360,"proteinas":7}`)))

	foods, err := r.SearchFoods(context.Background(), " arroz_ ", 5)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, 360.0, foods[0].Nutrients.Kcal)
	assert.Equal(t, 7.0, foods[0].Nutrients.Protein)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFood_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresFoodDB(db)

	mock.ExpectQuery(`SELECT code, name, nutrients FROM foods WHERE code=`).
		WithArgs("X").
		WillReturnError(sql.ErrNoRows)

	_, err := r.GetFood(context.Background(), "X")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertFoods_SingleTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresFoodDB(db)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO foods`)
	prep.ExpectExec().WithArgs("A001", "Arroz", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("B002", "Pan", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := r.UpsertFoods(context.Background(), []Food{
		{Code: "A001", Name: "Arroz", Nutrients: nutrient.Nutrients{Kcal: 360}},
		{Code: "B002", Name: "Pan", Nutrients: nutrient.Nutrients{Kcal: 270}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertFoods_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	r := NewPostgresFoodDB(db)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO foods`)
	prep.ExpectExec().WithArgs("A001", "Arroz", sqlmock.AnyArg()).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := r.UpsertFoods(context.Background(), []Food{{Code: "A001", Name: "Arroz"}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
