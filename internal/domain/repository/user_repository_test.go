package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"quizzical/internal/common"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUserCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCsvUserRepositoryLoadAll(t *testing.T) {
	path := writeUserCSV(t, "username,password,read,write\nalice,secret,1,1\nbob,hunter2,1,0\n")
	repo := NewCsvUserRepository(path)

	users, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "secret", users[0].Password)
	assert.True(t, users[0].Read)
	assert.True(t, users[0].Write)

	assert.Equal(t, "bob", users[1].Username)
	assert.True(t, users[1].Read)
	assert.False(t, users[1].Write)
}

func TestCsvUserRepositoryAcceptsTextualBooleans(t *testing.T) {
	path := writeUserCSV(t, "username,password,read,write\nalice,secret,true,false\n")
	repo := NewCsvUserRepository(path)

	users, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Read)
	assert.False(t, users[0].Write)
}

func TestCsvUserRepositoryDuplicateUsernames(t *testing.T) {
	path := writeUserCSV(t, "username,password,read,write\nalice,secret,1,1\nalice,other,0,0\n")
	repo := NewCsvUserRepository(path)

	_, err := repo.LoadAll(context.Background())
	require.ErrorIs(t, err, common.ErrStoreIntegrity)
}

func TestCsvUserRepositorySchemaViolations(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wrong column name", "username,password,canread,write\nalice,secret,1,1\n"},
		{"missing column", "username,password,read\nalice,secret,1\n"},
		{"extra column", "username,password,read,write,admin\nalice,secret,1,1,1\n"},
		{"non-boolean flag", "username,password,read,write\nalice,secret,yes,1\n"},
		{"ragged row", "username,password,read,write\nalice,secret,1\n"},
		{"empty file", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewCsvUserRepository(writeUserCSV(t, tc.content))
			_, err := repo.LoadAll(context.Background())
			require.ErrorIs(t, err, common.ErrStoreIntegrity)
		})
	}
}

func TestCsvUserRepositoryMissingFile(t *testing.T) {
	repo := NewCsvUserRepository(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := repo.LoadAll(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrStoreIntegrity)
}

func TestPgUserRepositoryLoadAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "password", "read", "write"}).
		AddRow("alice", "secret", true, true).
		AddRow("bob", "hunter2", true, false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT username, password, read, write FROM users")).
		WillReturnRows(rows)

	repo := NewPgUserRepository(db)
	users, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepositoryDuplicateUsernames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "password", "read", "write"}).
		AddRow("alice", "secret", true, true).
		AddRow("alice", "other", false, false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT username, password, read, write FROM users")).
		WillReturnRows(rows)

	repo := NewPgUserRepository(db)
	_, err = repo.LoadAll(context.Background())
	require.ErrorIs(t, err, common.ErrStoreIntegrity)
}
