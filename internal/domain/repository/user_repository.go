package repository

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"quizzical/internal/common"
	"quizzical/internal/domain/model"
)

// UserRepository loads the user table. Every call re-reads storage; the
// table is never cached between requests.
type UserRepository interface {
	LoadAll(ctx context.Context) ([]model.User, error)
}

var userColumns = []string{"username", "password", "read", "write"}

type csvUserRepository struct {
	path string
	mu   sync.Mutex
}

func NewCsvUserRepository(path string) UserRepository {
	return &csvUserRepository{path: path}
}

func (r *csvUserRepository) LoadAll(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csvUserRepository.LoadAll: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed user table: %v: %w", err, common.ErrStoreIntegrity)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("user table has no header row: %w", common.ErrStoreIntegrity)
	}

	header := records[0]
	if len(header) != len(userColumns) {
		return nil, fmt.Errorf("user table has %d columns, want %d: %w", len(header), len(userColumns), common.ErrStoreIntegrity)
	}
	for i, name := range userColumns {
		if header[i] != name {
			return nil, fmt.Errorf("user table column %d is %q, want %q: %w", i, header[i], name, common.ErrStoreIntegrity)
		}
	}

	users := make([]model.User, 0, len(records)-1)
	for _, rec := range records[1:] {
		read, err := strconv.ParseBool(rec[2])
		if err != nil {
			return nil, fmt.Errorf("user %q has non-boolean read flag %q: %w", rec[0], rec[2], common.ErrStoreIntegrity)
		}
		write, err := strconv.ParseBool(rec[3])
		if err != nil {
			return nil, fmt.Errorf("user %q has non-boolean write flag %q: %w", rec[0], rec[3], common.ErrStoreIntegrity)
		}
		users = append(users, model.User{
			Username: rec[0],
			Password: rec[1],
			Read:     read,
			Write:    write,
		})
	}

	if err := checkUsernamesUnique(users); err != nil {
		return nil, err
	}
	return users, nil
}

func checkUsernamesUnique(users []model.User) error {
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if _, dup := seen[u.Username]; dup {
			return fmt.Errorf("users are not unique in the login database (%q): %w", u.Username, common.ErrStoreIntegrity)
		}
		seen[u.Username] = struct{}{}
	}
	return nil
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) LoadAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT username, password, read, write FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.LoadAll: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Password, &u.Read, &u.Write); err != nil {
			return nil, fmt.Errorf("pgUserRepository.LoadAll: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.LoadAll: %w", err)
	}

	// The table carries a unique constraint, but the caller's contract is
	// the same as for the file store.
	if err := checkUsernamesUnique(users); err != nil {
		return nil, err
	}
	return users, nil
}
