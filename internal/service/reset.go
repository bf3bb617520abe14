package service

import (
	"context"
)

type ResetRepository interface {
	ResetUser(ctx context.Context, userID int64) (int64, error)
}

type ResetService struct {
	tr       Transactor
	resetter ResetRepository
	quizRepo QuizRepository
}

func NewResetService(tr Transactor, resetter ResetRepository, quizRepo QuizRepository) *ResetService {
	return &ResetService{
		tr:       tr,
		resetter: resetter,
		quizRepo: quizRepo,
	}
}

// ResetUser deletes the quiz history of the user. The id of the session that
// was running, if any, is returned so the caller can drop its questions.
func (s *ResetService) ResetUser(ctx context.Context, userID int64) (activeSessionID int64, err error) {
	err = s.tr.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.quizRepo.GetActiveByUserID(ctx, userID)
		switch {
		case err == nil:
			activeSessionID = active.ID
		case !isSessionNotFound(err):
			return err
		}

		_, err = s.resetter.ResetUser(ctx, userID)
		return err
	})
	return activeSessionID, err
}
