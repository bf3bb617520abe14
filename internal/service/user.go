package service

import (
	"context"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact. It reports whether the
// user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (bool, error) {
	exists, err := s.repository.UserExists(ctx, userID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	return s.repository.SaveUser(ctx, entities.NewUser(userID, chatID))
}
