package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/auth"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/cache"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Login checks credentials and issues a JWT. Verified credentials are cached
// in Redis for a short window so repeat logins skip the bcrypt compare.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	if userID, ok := cache.GetCachedAuth(ctx, req.Username, req.Password); ok {
		user, err := s.Repo.Get(ctx, userID)
		if err == nil {
			return s.issueToken(user)
		}
	}

	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Validation("invalid username or password")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validation("invalid username or password")
	}

	cache.CacheAuth(ctx, req.Username, req.Password, user.ID)
	return s.issueToken(user)
}

func (s *UserService) issueToken(user *models.User) (*models.LoginResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// CreateEmployee registers a prep-station account the POS can route order
// lines to.
func (s *UserService) CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	existing, _ := s.Repo.GetByUsername(ctx, req.Username)
	if existing != nil && existing.ID != "" {
		return nil, apperrors.Validation("username %q is already taken", req.Username)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:         req.Username,
		PasswordHash:     hash,
		Role:             models.RoleEmployee,
		EmployeeCode:     req.EmployeeCode,
		ConfirmationMode: req.ConfirmationMode,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, apperrors.Storage("create employee", err)
	}

	return &models.Employee{
		ID:               user.ID,
		Username:         user.Username,
		EmployeeCode:     user.EmployeeCode,
		ConfirmationMode: user.ConfirmationMode,
	}, nil
}

func (s *UserService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.Repo.ListEmployees(ctx)
	if err != nil {
		return nil, apperrors.Storage("list employees", err)
	}
	return employees, nil
}

// UpdateEmployee edits an employee account. An empty password keeps the
// current one.
func (s *UserService) UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("employee", id)
		}
		return nil, apperrors.Storage("get employee", err)
	}
	if user.Role != models.RoleEmployee {
		return nil, apperrors.Validation("user %q is not an employee", id)
	}

	user.Username = req.Username
	user.EmployeeCode = req.EmployeeCode
	user.ConfirmationMode = req.ConfirmationMode
	user.PasswordHash = ""
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, apperrors.Storage("update employee", err)
	}

	return &models.Employee{
		ID:               user.ID,
		Username:         user.Username,
		EmployeeCode:     user.EmployeeCode,
		ConfirmationMode: user.ConfirmationMode,
	}, nil
}

func (s *UserService) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return apperrors.Storage("delete employee", err)
	}
	return nil
}
