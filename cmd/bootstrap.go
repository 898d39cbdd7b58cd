package cmd

import (
	"context"
	"fmt"
	"log"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/data/storage"
	"cinema-boxoffice/internal/syncer"
	"cinema-boxoffice/pkg/cinemaapi"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

// runtime is everything a command needs once config and storage are up.
type runtime struct {
	config *utils.Config
	log    *zap.Logger
	repo   *repository.Repository
	store  *catalog.Store
	close  func()
}

func bootstrap(ctx context.Context) (*runtime, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	kv, closeStorage, err := storage.Open(ctx, config, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	repo := repository.NewRepository(kv, logger)
	store := catalog.NewStore(repo, logger)
	store.Load(ctx)

	return &runtime{
		config: config,
		log:    logger,
		repo:   repo,
		store:  store,
		close: func() {
			closeStorage()
			_ = logger.Sync()
		},
	}, nil
}

func (rt *runtime) newSyncer() *syncer.Syncer {
	client := cinemaapi.NewClient(rt.config.Sync.BaseURL, nil)
	return syncer.New(client, rt.store, rt.repo.Auth, syncer.Options{
		Login:        rt.config.Sync.Login,
		Password:     rt.config.Sync.Password,
		Interval:     rt.config.Sync.Interval,
		PushOnChange: rt.config.Sync.PushOnChange,
		Location:     rt.config.App.Location(),
	}, rt.log)
}
