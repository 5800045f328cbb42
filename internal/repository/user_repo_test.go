package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestCreateUserReturnsID(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("kobby", "hashed", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	id, err := repo.CreateUser(context.Background(), "kobby", "hashed")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestUsernameExists(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("kobby").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.UsernameExists(context.Background(), "kobby")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdateUsernameMissingUser(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectExec(`UPDATE users SET username=`).
		WithArgs("newname", int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateUsername(context.Background(), 42, "newname")
	assert.EqualError(t, err, "user not found")
}
