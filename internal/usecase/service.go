package usecase

import (
	"context"
	"time"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Hall     HallService
	Movie    MovieService
	Editor   EditorService
	Booking  BookingService
	Schedule ScheduleService
	Ticket   TicketService
	Sync     SyncService
}

// RemoteSync is the sync adapter as seen by the editor and movie services.
// A nil RemoteSync means the service runs offline.
type RemoteSync interface {
	UpdateHallSales(ctx context.Context, hall entity.Hall) error
	RemoveHall(ctx context.Context, name string) error
	RemoveMovie(ctx context.Context, title string) error
	SyncNow(ctx context.Context) error
	FullSync(ctx context.Context) error
}

func NewService(repo *repository.Repository, store *catalog.Store, remote RemoteSync, config *utils.Config, log *zap.Logger) *Service {
	if remote == nil {
		remote = offlineSync{}
	}
	clock := clock{loc: config.App.Location(), now: time.Now}

	return &Service{
		Auth:     NewAuthService(repo.Auth, config.Admin, log),
		Hall:     NewHallService(store, log),
		Movie:    NewMovieService(store, remote, config.App.PosterPlaceholder, log),
		Editor:   NewEditorService(store, remote, log),
		Booking:  NewBookingService(repo.Booking, store, clock, log),
		Schedule: NewScheduleService(store, config.App.PosterPlaceholder, clock, log),
		Ticket:   NewTicketService(repo.Booking, log),
		Sync:     NewSyncService(remote, log),
	}
}

type clock struct {
	loc *time.Location
	now func() time.Time
}

func (c clock) Now() time.Time {
	return c.now().In(c.loc)
}

type offlineSync struct{}

func (offlineSync) UpdateHallSales(context.Context, entity.Hall) error { return nil }
func (offlineSync) RemoveHall(context.Context, string) error           { return nil }
func (offlineSync) RemoveMovie(context.Context, string) error          { return nil }
func (offlineSync) SyncNow(context.Context) error                      { return nil }
func (offlineSync) FullSync(context.Context) error                     { return nil }
