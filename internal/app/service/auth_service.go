package service

import (
	"context"
	"fmt"

	"quizzical/internal/common"
	"quizzical/internal/common/security"
	"quizzical/internal/domain/model"
	"quizzical/internal/domain/repository"
)

// AuthService checks submitted Basic credentials against the user table.
// The table is loaded fresh on every check; nothing is cached between
// requests.
type AuthService struct {
	userRepo        repository.UserRepository
	bcryptPasswords bool
}

func NewAuthService(userRepo repository.UserRepository, bcryptPasswords bool) *AuthService {
	return &AuthService{userRepo: userRepo, bcryptPasswords: bcryptPasswords}
}

// Authenticate returns the matching user on success. Unknown usernames and
// wrong passwords both come back as ErrUnauthorized so callers cannot
// distinguish the two. Store-integrity faults propagate as-is.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	users, err := s.userRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username != username {
			continue
		}
		if s.passwordMatches(password, users[i].Password) {
			return &users[i], nil
		}
		return nil, common.ErrUnauthorized
	}
	return nil, common.ErrUnauthorized
}

func (s *AuthService) passwordMatches(submitted, stored string) bool {
	if s.bcryptPasswords {
		return security.CheckPasswordHash(submitted, stored)
	}
	return security.CheckPassword(submitted, stored)
}

// FirstUser returns the first row of the user table. The /test self-check
// uses it to exercise the login path with known-good credentials.
func (s *AuthService) FirstUser(ctx context.Context) (*model.User, error) {
	users, err := s.userRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user table is empty: %w", common.ErrNotFound)
	}
	return &users[0], nil
}
