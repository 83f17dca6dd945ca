package store

import (
	"context"
	"time"

	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

func (s *localStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readCollection[models.User](ctx, s, collectionUsers)
	if err != nil {
		return models.User{}, err
	}

	for _, existing := range users {
		if existing.Email == user.Email {
			return models.User{}, ErrEmailAlreadyExists
		}
	}

	user.ID = utils.NewUUID()
	user.CreatedAt = time.Now().UTC()
	user.Password = ""

	users = append(users, user)

	if err = writeCollection(ctx, s, collectionUsers, users); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *localStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readCollection[models.User](ctx, s, collectionUsers)
	if err != nil {
		return models.User{}, err
	}

	for _, user := range users {
		if user.Email == email {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}
