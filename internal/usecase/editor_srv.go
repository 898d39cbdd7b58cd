package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/internal/dto/response"
	"cinema-boxoffice/internal/seating"
	"cinema-boxoffice/internal/timeline"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

// EditorService is the admin console. It keeps two independent hall
// selections (seat grid and price panel) and the scheduler drag state.
type EditorService interface {
	State(ctx context.Context) response.EditorStateResponse

	// Halls
	CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, id string) error
	SelectHall(ctx context.Context, id string) (*response.HallGridResponse, error)
	SelectPriceHall(ctx context.Context, id string) (*response.HallResponse, error)

	// Seat grid of the active hall
	Grid(ctx context.Context) (*response.HallGridResponse, error)
	ToggleSeat(ctx context.Context, req *request.ToggleSeatRequest) (*response.HallGridResponse, error)
	SaveConfig(ctx context.Context, req *request.HallConfigRequest) (*response.HallGridResponse, error)
	CancelConfig(ctx context.Context) (*response.HallGridResponse, error)

	// Price panel of the active price hall
	SavePrices(ctx context.Context, req *request.HallPricesRequest) (*response.HallResponse, error)
	ToggleSales(ctx context.Context) (*response.SalesResponse, error)

	// Scheduler
	Timelines(ctx context.Context) []response.TimelineResponse
	Drag() DragState
	StartMovieDrag(ctx context.Context, req *request.StartMovieDragRequest) (DragState, error)
	DropOnTimeline(ctx context.Context, req *request.DropOnTimelineRequest) (DragState, error)
	ConfirmPending(ctx context.Context, req *request.ConfirmSessionRequest) (*response.TimelineResponse, error)
	CancelPending(ctx context.Context) DragState
	StartSessionDrag(ctx context.Context, req *request.StartSessionDragRequest) (DragState, error)
	DropOnTrash(ctx context.Context) (int, error)
	DropElsewhere(ctx context.Context) DragState
}

type editorService struct {
	store  *catalog.Store
	remote RemoteSync
	log    *zap.Logger

	mu                sync.Mutex
	activeHallID      string
	activePriceHallID string
	drag              DragState
}

func NewEditorService(store *catalog.Store, remote RemoteSync, log *zap.Logger) EditorService {
	return &editorService{
		store:  store,
		remote: remote,
		log:    log.With(zap.String("service", "editor")),
		drag:   Idle{},
	}
}

func (s *editorService) State(ctx context.Context) response.EditorStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return response.EditorStateResponse{
		ActiveHallID:      s.activeHallID,
		ActivePriceHallID: s.activePriceHallID,
		Drag:              s.drag.View(),
	}
}

// ==================== HALLS ====================

func (s *editorService) CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	hall, err := s.store.AddHall(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("create hall %s: %w", req.Name, err)
	}

	s.mu.Lock()
	s.activeHallID = hall.ID
	s.activePriceHallID = hall.ID
	s.mu.Unlock()

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *editorService) DeleteHall(ctx context.Context, id string) error {
	hall, err := s.store.Hall(id)
	if err != nil {
		return fmt.Errorf("delete hall %s: %w", id, err)
	}
	if err := s.store.DeleteHall(ctx, id); err != nil {
		return err
	}
	if syncErr := s.remote.RemoveHall(ctx, hall.Name); syncErr != nil {
		s.log.Warn("Remote hall delete failed", zap.String("hall", hall.Name), zap.Error(syncErr))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeHallID == id {
		s.activeHallID = ""
	}
	if s.activePriceHallID == id {
		s.activePriceHallID = ""
	}
	switch d := s.drag.(type) {
	case PendingSession:
		if d.HallID == id {
			s.drag = Idle{}
		}
	case DraggingSession:
		if d.HallID == id {
			s.drag = Idle{}
		}
	}
	return nil
}

func (s *editorService) SelectHall(ctx context.Context, id string) (*response.HallGridResponse, error) {
	hall, err := s.store.Hall(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.activeHallID = id
	s.mu.Unlock()
	return gridResponse(hall), nil
}

func (s *editorService) SelectPriceHall(ctx context.Context, id string) (*response.HallResponse, error) {
	hall, err := s.store.Hall(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.activePriceHallID = id
	s.mu.Unlock()
	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *editorService) activeHall() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeHallID == "" {
		return "", fmt.Errorf("%w: select a hall first", utils.ErrValidation)
	}
	return s.activeHallID, nil
}

func (s *editorService) activePriceHall() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activePriceHallID == "" {
		return "", fmt.Errorf("%w: select a hall for prices and sales first", utils.ErrValidation)
	}
	return s.activePriceHallID, nil
}

// ==================== SEAT GRID ====================

func (s *editorService) Grid(ctx context.Context) (*response.HallGridResponse, error) {
	id, err := s.activeHall()
	if err != nil {
		return nil, err
	}
	hall, err := s.store.Hall(id)
	if err != nil {
		return nil, err
	}
	return gridResponse(hall), nil
}

// ToggleSeat advances one seat and persists the whole hall collection.
func (s *editorService) ToggleSeat(ctx context.Context, req *request.ToggleSeatRequest) (*response.HallGridResponse, error) {
	id, err := s.activeHall()
	if err != nil {
		return nil, err
	}

	var state entity.SeatState
	hall, err := s.store.UpdateHall(ctx, id, func(h *entity.Hall) error {
		seating.Normalize(h)
		var toggleErr error
		state, toggleErr = seating.Toggle(h, req.Index)
		return toggleErr
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Seat toggled", zap.String("hall_id", id), zap.Int("index", req.Index), zap.String("state", string(state)))
	return gridResponse(hall), nil
}

func (s *editorService) SaveConfig(ctx context.Context, req *request.HallConfigRequest) (*response.HallGridResponse, error) {
	id, err := s.activeHall()
	if err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	hall, err := s.store.UpdateHall(ctx, id, func(h *entity.Hall) error {
		return seating.Resize(h, req.Rows, req.Seats)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Hall configuration saved",
		zap.String("hall_id", id),
		zap.Int("rows", hall.Rows),
		zap.Int("seats", hall.Seats),
	)
	return gridResponse(hall), nil
}

// CancelConfig discards unsaved input by returning the persisted grid.
func (s *editorService) CancelConfig(ctx context.Context) (*response.HallGridResponse, error) {
	return s.Grid(ctx)
}

// ==================== PRICES & SALES ====================

func (s *editorService) SavePrices(ctx context.Context, req *request.HallPricesRequest) (*response.HallResponse, error) {
	id, err := s.activePriceHall()
	if err != nil {
		return nil, err
	}

	prices := entity.Prices{
		Normal: utils.ParseInt(string(req.Normal), entity.DefaultNormalPrice),
		VIP:    utils.ParseInt(string(req.VIP), entity.DefaultVIPPrice),
	}
	hall, err := s.store.UpdateHall(ctx, id, func(h *entity.Hall) error {
		h.Prices = &prices
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Hall prices saved", zap.String("hall_id", id), zap.Int("normal", prices.Normal), zap.Int("vip", prices.VIP))
	resp := response.HallToResponse(hall)
	return &resp, nil
}

// ToggleSales flips the sales flag and saves it before propagating it to the
// remote API. When propagation fails the flag is flipped back and saved again.
func (s *editorService) ToggleSales(ctx context.Context) (*response.SalesResponse, error) {
	id, err := s.activePriceHall()
	if err != nil {
		return nil, err
	}

	hall, err := s.store.UpdateHall(ctx, id, func(h *entity.Hall) error {
		h.SalesOpen = utils.BoolPtr(!h.IsSalesOpen())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if syncErr := s.remote.UpdateHallSales(ctx, hall); syncErr != nil {
		s.log.Warn("Sales propagation failed, reverting",
			zap.String("hall_id", id),
			zap.Bool("sales_open", hall.IsSalesOpen()),
			zap.Error(syncErr),
		)
		previous := !hall.IsSalesOpen()
		if _, err := s.store.UpdateHall(ctx, id, func(h *entity.Hall) error {
			h.SalesOpen = utils.BoolPtr(previous)
			return nil
		}); err != nil {
			return nil, errors.Join(syncErr, fmt.Errorf("revert sales of hall %s: %w", id, err))
		}
		if !errors.Is(syncErr, utils.ErrSync) {
			syncErr = fmt.Errorf("%w: %w", utils.ErrSync, syncErr)
		}
		return nil, fmt.Errorf("sales status of %s not changed: %w", hall.DisplayName(), syncErr)
	}

	s.log.Info("Hall sales toggled", zap.String("hall_id", id), zap.Bool("sales_open", hall.IsSalesOpen()))
	return &response.SalesResponse{
		HallID:    hall.ID,
		Name:      hall.DisplayName(),
		SalesOpen: hall.IsSalesOpen(),
	}, nil
}

// ==================== SCHEDULER ====================

func (s *editorService) Timelines(ctx context.Context) []response.TimelineResponse {
	halls := s.store.Halls()
	out := make([]response.TimelineResponse, 0, len(halls))
	for _, h := range halls {
		out = append(out, response.TimelineToResponse(h))
	}
	return out
}

func (s *editorService) Drag() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag
}

func (s *editorService) StartMovieDrag(ctx context.Context, req *request.StartMovieDragRequest) (DragState, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}
	movie, err := s.store.Movie(req.MovieID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.drag.(PendingSession); pending {
		return nil, fmt.Errorf("%w: confirm or cancel the pending session first", utils.ErrValidation)
	}
	s.drag = DraggingMovie{MovieID: movie.ID, Title: movie.Title, Duration: movie.Duration}
	return s.drag, nil
}

// DropOnTimeline turns a dragged movie into a pending session for the hall.
// Dropping a session block on a timeline does not move it.
func (s *editorService) DropOnTimeline(ctx context.Context, req *request.DropOnTimelineRequest) (DragState, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}
	if _, err := s.store.Hall(req.HallID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch d := s.drag.(type) {
	case DraggingMovie:
		s.drag = PendingSession{HallID: req.HallID, MovieID: d.MovieID, Title: d.Title, Duration: d.Duration}
	case DraggingSession:
		s.drag = Idle{}
	default:
		return nil, fmt.Errorf("%w: no movie is being dragged", utils.ErrValidation)
	}
	return s.drag, nil
}

// ConfirmPending places the pending session at the given HH:MM. An invalid
// time leaves the session pending.
func (s *editorService) ConfirmPending(ctx context.Context, req *request.ConfirmSessionRequest) (*response.TimelineResponse, error) {
	s.mu.Lock()
	pending, ok := s.drag.(PendingSession)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: there is no pending session", utils.ErrValidation)
	}

	if strings.TrimSpace(req.StartTime) == "" {
		return nil, fmt.Errorf("%w: enter the session start time", utils.ErrValidation)
	}
	start, err := timeline.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}

	hall, err := s.store.UpdateHall(ctx, pending.HallID, func(h *entity.Hall) error {
		timeline.Place(h, entity.Session{
			MovieID:      pending.MovieID,
			Title:        pending.Title,
			StartMinutes: start,
			Duration:     pending.Duration,
		})
		return nil
	})

	s.mu.Lock()
	if _, still := s.drag.(PendingSession); still {
		s.drag = Idle{}
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.log.Info("Session placed",
		zap.String("hall_id", hall.ID),
		zap.String("title", pending.Title),
		zap.String("start", timeline.FormatMinutes(start)),
	)
	resp := response.TimelineToResponse(hall)
	return &resp, nil
}

func (s *editorService) CancelPending(ctx context.Context) DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drag.(PendingSession); ok {
		s.drag = Idle{}
	}
	return s.drag
}

func (s *editorService) StartSessionDrag(ctx context.Context, req *request.StartSessionDragRequest) (DragState, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}
	hall, err := s.store.Hall(req.HallID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, session := range hall.Sessions {
		if session.Title == req.Title && session.StartMinutes == req.StartMinutes {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("session %s at %s: %w", req.Title, timeline.FormatMinutes(req.StartMinutes), utils.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.drag.(PendingSession); pending {
		return nil, fmt.Errorf("%w: confirm or cancel the pending session first", utils.ErrValidation)
	}
	s.drag = DraggingSession{HallID: req.HallID, Title: req.Title, StartMinutes: req.StartMinutes}
	return s.drag, nil
}

// DropOnTrash removes the dragged session (every session sharing its title
// and start) and returns how many were removed. Dropping a movie card on
// the trash just ends the drag.
func (s *editorService) DropOnTrash(ctx context.Context) (int, error) {
	s.mu.Lock()
	var dragged DraggingSession
	switch d := s.drag.(type) {
	case DraggingSession:
		dragged = d
		s.drag = Idle{}
	case DraggingMovie:
		s.drag = Idle{}
		s.mu.Unlock()
		return 0, nil
	default:
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: nothing is being dragged", utils.ErrValidation)
	}
	s.mu.Unlock()

	removed := 0
	_, err := s.store.UpdateHall(ctx, dragged.HallID, func(h *entity.Hall) error {
		removed = timeline.Remove(h, dragged.Title, dragged.StartMinutes)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("Session removed",
		zap.String("hall_id", dragged.HallID),
		zap.String("title", dragged.Title),
		zap.Int("removed", removed),
	)
	return removed, nil
}

// DropElsewhere ends any drag without changes. A pending session stays pending.
func (s *editorService) DropElsewhere(ctx context.Context) DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.drag.(type) {
	case DraggingMovie, DraggingSession:
		s.drag = Idle{}
	}
	return s.drag
}

func gridResponse(h entity.Hall) *response.HallGridResponse {
	return &response.HallGridResponse{
		HallID: h.ID,
		Name:   h.DisplayName(),
		Grid:   seating.Render(h),
	}
}
