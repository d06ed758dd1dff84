package localcache

import (
	"context"

	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
)

// UserCache es la vista de usuarios del caché local.
type UserCache struct {
	co *core
}

func (u *UserCache) List(ctx context.Context) ([]*entity.User, error) {
	u.co.mu.Lock()
	defer u.co.mu.Unlock()
	return u.list(ctx)
}

func (u *UserCache) list(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := u.co.getJSON(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *UserCache) Replace(ctx context.Context, users []*entity.User) error {
	u.co.mu.Lock()
	defer u.co.mu.Unlock()
	return u.co.setJSON(ctx, keyUsers, users)
}

func (u *UserCache) Get(ctx context.Context, id string) (*entity.User, error) {
	users, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, usr := range users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return nil, nil
}

func (u *UserCache) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, usr := range users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return nil, nil
}

func (u *UserCache) Add(ctx context.Context, user *entity.User) error {
	u.co.mu.Lock()
	defer u.co.mu.Unlock()

	users, err := u.list(ctx)
	if err != nil {
		return err
	}
	for _, usr := range users {
		if usr.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	users = append(users, user)
	return u.co.setJSON(ctx, keyUsers, users)
}

func (u *UserCache) Remove(ctx context.Context, id string) error {
	u.co.mu.Lock()
	defer u.co.mu.Unlock()

	users, err := u.list(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	found := false
	for _, usr := range users {
		if usr.ID == id {
			found = true
			continue
		}
		kept = append(kept, usr)
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return u.co.setJSON(ctx, keyUsers, kept)
}
