package repository

import (
	"context"
	"fmt"

	"cinema-boxoffice/internal/data/storage"

	"go.uber.org/zap"
)

// AuthRepository keeps the admin login flag and the remote API token.
type AuthRepository interface {
	IsAdmin(ctx context.Context) (bool, error)
	SetAdmin(ctx context.Context, admin bool) error
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type authRepository struct {
	store storage.Storage
	log   *zap.Logger
}

func NewAuthRepository(store storage.Storage, log *zap.Logger) AuthRepository {
	return &authRepository{
		store: store,
		log:   log.With(zap.String("repository", "auth")),
	}
}

func (r *authRepository) IsAdmin(ctx context.Context) (bool, error) {
	value, ok, err := r.store.Get(ctx, storage.KeyIsAdmin)
	if err != nil {
		return false, fmt.Errorf("read admin flag: %w", err)
	}
	return ok && value == "true", nil
}

// SetAdmin writes "true" or removes the key; the flag is never stored as "false".
func (r *authRepository) SetAdmin(ctx context.Context, admin bool) error {
	var err error
	if admin {
		err = r.store.Set(ctx, storage.KeyIsAdmin, "true")
	} else {
		err = r.store.Delete(ctx, storage.KeyIsAdmin)
	}
	if err != nil {
		r.log.Error("Failed to update admin flag", zap.Error(err), zap.Bool("admin", admin))
		return fmt.Errorf("set admin flag: %w", err)
	}
	return nil
}

func (r *authRepository) Token(ctx context.Context) (string, error) {
	token, _, err := r.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

func (r *authRepository) SaveToken(ctx context.Context, token string) error {
	if err := r.store.Set(ctx, storage.KeyToken, token); err != nil {
		r.log.Error("Failed to save token", zap.Error(err))
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *authRepository) ClearToken(ctx context.Context) error {
	if err := r.store.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
