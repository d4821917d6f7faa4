package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Edu92337/quizmaster-backend/internal/models"
)

const userColumns = `uid, email, password_hash, is_subscribed, stripe_customer_id, created_at`

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, password_hash)
			  VALUES ($1, $2)
			  RETURNING uid;`
	if err := s.conn(ctx).QueryRowContext(ctx, query, email, passwordHash).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByCustomerID возвращает пользователя по идентификатору клиента в Stripe.
func (s *Storage) GetUserByCustomerID(ctx context.Context, customerID string) (*models.User, error) {
	const op = "storage.GetUserByCustomerID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE stripe_customer_id = $1`
	u, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, customerID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SetStripeCustomerID привязывает клиента Stripe к пользователю.
func (s *Storage) SetStripeCustomerID(ctx context.Context, userUID, customerID string) error {
	const op = "storage.SetStripeCustomerID"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET stripe_customer_id = $1 WHERE uid = $2`
	res, err := s.conn(ctx).ExecContext(ctx, query, customerID, userUID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOne(op, res)
}

// SetSubscribed выставляет флаг доступа пользователя.
func (s *Storage) SetSubscribed(ctx context.Context, userUID string, subscribed bool) error {
	const op = "storage.SetSubscribed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET is_subscribed = $1 WHERE uid = $2`
	res, err := s.conn(ctx).ExecContext(ctx, query, subscribed, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOne(op, res)
}

// IsSubscribed возвращает текущий флаг доступа пользователя.
func (s *Storage) IsSubscribed(ctx context.Context, userUID string) (bool, error) {
	const op = "storage.IsSubscribed"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var subscribed bool
	query := `SELECT is_subscribed FROM users WHERE uid = $1`
	if err := s.conn(ctx).QueryRowContext(ctx, query, userUID).Scan(&subscribed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return subscribed, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var customerID sql.NullString
	if err := row.Scan(&u.UUID, &u.Email, &u.PasswordHash, &u.IsSubscribed, &customerID, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if customerID.Valid {
		u.StripeCustomerID = &customerID.String
	}
	return u, nil
}

func affectedOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
