package service

import (
	"context"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, email, phone, avatarURL string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	return s.userRepo.Update(ctx, user)
}

func (s *userService) GetCreditBalance(ctx context.Context, userID int32) (int32, error) {
	return s.userRepo.GetCredits(ctx, userID)
}

func (s *userService) ListCreditTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditTransaction, int32, error) {
	return s.userRepo.ListCreditTransactions(ctx, userID, page, pageSize)
}
