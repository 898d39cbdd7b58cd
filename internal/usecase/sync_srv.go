package usecase

import (
	"context"

	"go.uber.org/zap"
)

type SyncService interface {
	SyncNow(ctx context.Context) error
}

type syncService struct {
	remote RemoteSync
	log    *zap.Logger
}

func NewSyncService(remote RemoteSync, log *zap.Logger) SyncService {
	return &syncService{
		remote: remote,
		log:    log.With(zap.String("service", "sync")),
	}
}

func (s *syncService) SyncNow(ctx context.Context) error {
	if err := s.remote.SyncNow(ctx); err != nil {
		s.log.Warn("Manual sync failed", zap.Error(err))
		return err
	}
	s.log.Info("Manual sync completed")
	return nil
}
