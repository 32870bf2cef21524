package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReservationTTL bounds how long a slot stays held while its booking round
// trip is in flight.
const ReservationTTL = 30 * time.Second

// ReservationStore holds a short-lived claim on (counselor, slot start)
// while a booking commits. The external calendar has no atomic
// check-and-reserve, so this narrows the read-then-write race between
// concurrent clients of this service. It cannot close the race against
// writers going straight to the calendar.
type ReservationStore interface {
	Reserve(ctx context.Context, counselorID string, start time.Time) (bool, error)
	Release(ctx context.Context, counselorID string, start time.Time)
}

// RedisReservationStore implements ReservationStore with SETNX.
type RedisReservationStore struct {
	Client *redis.Client
}

func reservationKey(counselorID string, start time.Time) string {
	return fmt.Sprintf("resv:%s:%s", counselorID, start.UTC().Format(time.RFC3339))
}

// Reserve claims the slot, returning false if another booking holds it.
func (s *RedisReservationStore) Reserve(ctx context.Context, counselorID string, start time.Time) (bool, error) {
	return s.Client.SetNX(ctx, reservationKey(counselorID, start), "1", ReservationTTL).Result()
}

// Release drops the claim once the booking round trip finishes.
func (s *RedisReservationStore) Release(ctx context.Context, counselorID string, start time.Time) {
	s.Client.Del(ctx, reservationKey(counselorID, start))
}
