package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.ConfirmationMode == "" {
		u.ConfirmationMode = models.ConfirmationManual
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(id, username, password_hash, role, employee_code, confirmation_mode)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING created_at`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.EmployeeCode, u.ConfirmationMode,
	).Scan(&u.CreatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, role, COALESCE(employee_code, ''), confirmation_mode, created_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash,
		&user.Role, &user.EmployeeCode, &user.ConfirmationMode, &user.CreatedAt)
	return &user, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, role, COALESCE(employee_code, ''), confirmation_mode, created_at
         FROM users WHERE username=$1`, username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash,
		&user.Role, &user.EmployeeCode, &user.ConfirmationMode, &user.CreatedAt)
	return &user, err
}

// ListEmployees returns only users with the employee role, the set the POS
// can route order lines to.
func (r *UserRepository) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, username, COALESCE(employee_code, ''), confirmation_mode
         FROM users WHERE role='employee' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Username, &e.EmployeeCode, &e.ConfirmationMode); err != nil {
			return nil, err
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}

// Update updates an existing user. An empty PasswordHash keeps the current
// password.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if u.PasswordHash != "" {
		_, err := r.DB.Exec(ctx,
			`UPDATE users SET username=$1, password_hash=$2, employee_code=$3, confirmation_mode=$4
			 WHERE id=$5`,
			u.Username, u.PasswordHash, u.EmployeeCode, u.ConfirmationMode, u.ID)
		return err
	}

	_, err := r.DB.Exec(ctx,
		`UPDATE users SET username=$1, employee_code=$2, confirmation_mode=$3
         WHERE id=$4`,
		u.Username, u.EmployeeCode, u.ConfirmationMode, u.ID)
	return err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
