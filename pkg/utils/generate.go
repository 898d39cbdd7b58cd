package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// ==================== CATALOG IDS ====================

// GenerateHallID returns a time-ordered hall id (uuid v7 carries the timestamp).
func GenerateHallID() string {
	return "hall_" + newV7()
}

func GenerateMovieID() string {
	return "movie_" + newV7()
}

func GenerateRequestID() string {
	return uuid.New().String()
}

func newV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ==================== BOOKING CODE ====================

// GenerateBookingCode creates a code of the form BK-<unix millis>-<6 base36 chars>.
func GenerateBookingCode(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("BK-%s-%s", strconv.FormatInt(now.UnixMilli(), 10), suffix)
}
