package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"pharmapos/internal/config"
	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"
	"pharmapos/internal/sequence"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for any login failure, unknown
// account or wrong password alike, so responses don't leak which.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	RegisterCashier(ctx context.Context, req dto.RegisterCashierRequest) (*dto.RegisterResponse, error)
	LoginCashier(ctx context.Context, req dto.LoginCashierRequest) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Role != model.RoleAdmin && req.Role != model.RoleSupplier {
		return nil, invalid("role", "role must be admin or supplier")
	}
	user, err := s.newUser(req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Field: "email", Message: "email already registered"}
		}
		return nil, err
	}
	return &dto.RegisterResponse{Message: "user registered successfully"}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.verifyAndIssue(user, req.Password)
}

// RegisterCashier creates a cashier account and allocates its C### login
// id from the newest existing cashier.
func (s *authService) RegisterCashier(ctx context.Context, req dto.RegisterCashierRequest) (*dto.RegisterResponse, error) {
	lastID := ""
	if last, err := s.repo.FindLastCashier(ctx); err == nil && last.CashierID != nil {
		lastID = *last.CashierID
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.newUser(req.Email, req.Password, model.RoleCashier)
	if err != nil {
		return nil, err
	}
	cashierID := sequence.CashierID.Next(lastID)
	user.CashierID = &cashierID

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Field: "email", Message: "email or cashier id already registered"}
		}
		return nil, err
	}
	return &dto.RegisterResponse{
		Message:   "cashier registered successfully",
		CashierID: cashierID,
	}, nil
}

func (s *authService) LoginCashier(ctx context.Context, req dto.LoginCashierRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByCashierID(ctx, strings.TrimSpace(req.CashierID))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.verifyAndIssue(user, req.Password)
}

func (s *authService) newUser(email, password, role string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return &model.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

func (s *authService) verifyAndIssue(user *model.User, password string) (*dto.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
