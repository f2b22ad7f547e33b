package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	userRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/user"
	"github.com/m04kA/SMC-WheelShopService/internal/service/users/models"
)

const minPasswordLength = 8

// Service сервис для работы с пользователями
type Service struct {
	userRepo   UserRepository
	tokens     TokenManager
	bcryptCost int
	logger     Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, tokens TokenManager, bcryptCost int, logger Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register регистрирует нового клиента и сразу выдаёт access-токен
// Все зарегистрированные через публичный endpoint получают роль customer
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: registering user email=%s", req.Email)

	if err := validateRegister(req); err != nil {
		s.logger.Warn("Register: invalid input for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - failed to hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already taken", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	resp, err := s.buildAuthResponse(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: successfully registered user id=%d email=%s", created.ID, created.Email)
	return resp, nil
}

// Login проверяет учётные данные и выдаёт access-токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Info("Login: attempt for email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: user email=%s not found", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	resp, err := s.buildAuthResponse(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Login: user id=%d email=%s logged in", user.ID, user.Email)
	return resp, nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByID: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUser(user), nil
}

// ListEmployees возвращает список сотрудников мастерской
func (s *Service) ListEmployees(ctx context.Context) (*models.UserListResponse, error) {
	employees, err := s.userRepo.ListByRole(ctx, domain.RoleStaff)
	if err != nil {
		s.logger.Error("ListEmployees: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEmployees - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUserList(employees), nil
}

// buildAuthResponse выпускает токен и собирает ответ аутентификации
func (s *Service) buildAuthResponse(user *domain.User) (*models.AuthResponse, error) {
	token, exp, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		s.logger.Error("buildAuthResponse: failed to generate token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: failed to generate token: %v", ErrInternal, err)
	}
	return &models.AuthResponse{
		User:        *models.FromDomainUser(user),
		AccessToken: token,
		ExpiresAt:   exp,
	}, nil
}

func validateRegister(req *models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
