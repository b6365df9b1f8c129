package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/repositories"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/auth"
	"inmueblesv-catalog/pkg/metrics"
)

// UserService handles email/password registration and sign-in for the
// identity service.
type UserService struct {
	repo      repositories.UserRepository
	validator validators.UserValidator
	jwtSecret string
}

func NewUserService(repo repositories.UserRepository, validator validators.UserValidator, jwtSecret string) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
		jwtSecret: jwtSecret,
	}
}

func (s *UserService) Register(ctx context.Context, user *models.User) (*auth.TokenDetails, error) {
	if err := s.validator.ValidateRegister(user); err != nil {
		return nil, apperrors.NewAppError(err.Error(), err.Error(), apperrors.ErrCodeValidation, http.StatusBadRequest, err)
	}

	if existing, err := s.repo.FindByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, apperrors.NewAppError("email already registered", "This email is already registered.", apperrors.ErrCodeValidation, http.StatusConflict, nil)
	} else if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check email existence: %v", err)
	}

	start := time.Now()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user.ID = primitive.NewObjectID()
	user.Password = string(hashedPassword)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	return auth.GenerateJWT(user.ID.Hex(), user.DisplayName, user.Email, user.PhotoURL, s.jwtSecret)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*auth.TokenDetails, error) {
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return nil, apperrors.NewAppError(err.Error(), err.Error(), apperrors.ErrCodeValidation, http.StatusBadRequest, err)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("failed to query user: %v", err)
	}

	start := time.Now()
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, invalidCredentials()
	}

	return auth.GenerateJWT(user.ID.Hex(), user.DisplayName, user.Email, user.PhotoURL, s.jwtSecret)
}

// invalidCredentials deliberately does not distinguish an unknown email
// from a wrong password.
func invalidCredentials() *apperrors.AppError {
	return apperrors.NewAppError("invalid email or password", "Invalid email or password.", apperrors.ErrCodeAuthRequired, http.StatusUnauthorized, nil)
}
