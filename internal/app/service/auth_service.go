package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campdir/internal/common"
	"campdir/internal/common/security"
	"campdir/internal/domain/model"
	"campdir/internal/domain/repository"
	"campdir/internal/platform/queue"

	"github.com/google/uuid"
)

// MailEnqueuer hands password-reset mail jobs to the delivery worker.
type MailEnqueuer interface {
	Enqueue(ctx context.Context, job queue.MailJob) error
}

type AuthService struct {
	userRepo  repository.UserRepository
	mailQueue MailEnqueuer
	baseURL   string
}

func NewAuthService(userRepo repository.UserRepository, mailQueue MailEnqueuer, baseURL string) *AuthService {
	return &AuthService{userRepo: userRepo, mailQueue: mailQueue, baseURL: baseURL}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if role == model.RoleAdmin {
		return nil, "", common.Errorf("role admin cannot be self-assigned: %w", common.ErrBadRequest)
	}

	now := time.Now()
	user := &model.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Password:  req.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// validate against the plaintext so the min-length rule applies to
	// what the user typed, not the hash
	if err := model.Validate(user); err != nil {
		return nil, "", err
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", common.Errorf("Please provide an email and password: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.Password) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) GetMe(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

type UpdateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID string, req UpdateDetailsRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := model.Validate(user); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID string, req UpdatePasswordRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if !security.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return nil, "", common.Errorf("Password is incorrect: %w", common.ErrUnauthorized)
	}
	if len(req.NewPassword) < 6 {
		return nil, "", common.Errorf("Password should be at least 6 chars long: %w", common.ErrValidation)
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return nil, "", err
	}
	user.Password = hashed
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// ForgotPassword stores a hashed one-time reset token with a 10 minute
// expiry and queues the mail carrying the plaintext link. The token
// fields are rolled back when the mail cannot be queued.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("There is no user with that email: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	plaintext, hashed, err := security.NewResetToken()
	if err != nil {
		return err
	}

	expire := time.Now().Add(10 * time.Minute)
	user.ResetPasswordToken = hashed
	user.ResetPasswordExpire = &expire
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	job := queue.MailJob{
		ToEmail:  user.Email,
		ToName:   user.Name,
		ResetURL: s.baseURL + "/api/v1/auth/resetpassword/" + plaintext,
	}
	if err := s.mailQueue.Enqueue(ctx, job); err != nil {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		if rollbackErr := s.userRepo.Update(ctx, user); rollbackErr != nil {
			return fmt.Errorf("failed to roll back reset token: %w", rollbackErr)
		}
		return fmt.Errorf("email could not be sent: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) (*model.User, string, error) {
	user, err := s.userRepo.FindByResetToken(ctx, security.HashResetToken(resetToken))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.Errorf("Invalid token: %w", common.ErrBadRequest)
		}
		return nil, "", err
	}

	if len(newPassword) < 6 {
		return nil, "", common.Errorf("Password should be at least 6 chars long: %w", common.ErrValidation)
	}
	hashed, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, "", err
	}

	user.Password = hashed
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
