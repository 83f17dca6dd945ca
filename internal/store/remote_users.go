package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

// userRepository is the PostgreSQL-backed [UserStore].
type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserStore {
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

func (p *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = utils.NewUUID()

	row := p.DB.QueryRowContext(ctx, insertUser,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		string(user.Role),
	)
	if err := row.Scan(&user.CreatedAt); err != nil {
		classified := p.errorClassificator.Classify(err)
		if errors.Is(classified, ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("email", user.Email).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.Password = ""

	return user, nil
}

func (p *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := p.DB.QueryRowContext(ctx, findUserByEmail, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.FindUserByEmail").
			Str("email", email).
			Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}
