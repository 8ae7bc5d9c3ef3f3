package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/menublend/menublend-backend/internal/config"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/repository"
	"github.com/menublend/menublend-backend/pkg/bcrypt"
	"github.com/menublend/menublend-backend/pkg/email"
	jwtPkg "github.com/menublend/menublend-backend/pkg/jwt"
)

// Reset tokens are short-lived on purpose.
const TokenExpiryReset = 15 * time.Minute

type AuthService struct {
	userRepo     *repository.UserRepository
	profileRepo  *repository.RestaurantProfileRepository
	emailService *email.EmailService
	tokens       *jwtPkg.Manager
	siteURL      string
	jwtSecret    []byte
	jwtIssuer    string
}

func NewAuthService(
	userRepo *repository.UserRepository,
	profileRepo *repository.RestaurantProfileRepository,
	emailService *email.EmailService,
	tokens *jwtPkg.Manager,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		emailService: emailService,
		tokens:       tokens,
		siteURL:      cfg.SiteURL,
		jwtSecret:    []byte(cfg.JWTSecret),
		jwtIssuer:    cfg.JWTIssuer,
	}
}

// Register creates the user and their restaurant profile in one step. The
// profile starts with onboarding incomplete and an empty credit ledger.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleRestaurantOwner,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	profile := &models.RestaurantProfile{
		UserID:         user.ID,
		RestaurantName: req.RestaurantName,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.FullName)

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %v", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// ForgotPassword never reveals whether the address exists.
func (s *AuthService) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.GetByEmail(emailAddr)
	if err != nil {
		return nil
	}

	claims := jwt.MapClaims{
		"sub": user.Email,
		"exp": time.Now().Add(TokenExpiryReset).Unix(),
		"iat": time.Now().Unix(),
		"iss": s.jwtIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	resetToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.siteURL, resetToken)
	return s.emailService.SendPasswordResetEmail(user.Email, resetLink)
}

func (s *AuthService) ResetPassword(token string, newPassword string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	emailAddr, ok := claims["sub"].(string)
	if !ok {
		return errors.New("invalid token claims")
	}

	user, err := s.userRepo.GetByEmail(emailAddr)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(user.ID, hashedPassword)
}

func (s *AuthService) ChangePassword(userID uint, req models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(user.ID, hashedPassword)
}
