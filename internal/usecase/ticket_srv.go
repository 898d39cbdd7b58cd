package usecase

import (
	"context"
	"fmt"

	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/dto/response"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 220

type TicketService interface {
	Ticket(ctx context.Context, code string) (*response.TicketResponse, error)
	// QR encodes the booking code as a PNG.
	QR(ctx context.Context, code string) ([]byte, error)
}

type ticketService struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewTicketService(bookings repository.BookingRepository, log *zap.Logger) TicketService {
	return &ticketService{
		bookings: bookings,
		log:      log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) Ticket(ctx context.Context, code string) (*response.TicketResponse, error) {
	b, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := response.BookingToTicket(b)
	return &resp, nil
}

func (s *ticketService) QR(ctx context.Context, code string) ([]byte, error) {
	b, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(b.BookingCode, qrcode.Medium, qrSize)
	if err != nil {
		s.log.Error("Failed to encode QR code", zap.Error(err), zap.String("booking_code", code))
		return nil, fmt.Errorf("encode qr %s: %w", code, err)
	}
	return png, nil
}
