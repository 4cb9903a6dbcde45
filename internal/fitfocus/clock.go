package fitfocus

import (
	"time"

	"github.com/google/uuid"
)

// Clock stamps new measurements and food entries and decides which meals
// belong to today.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator assigns the ID of each new measurement and food entry.
type IDGenerator interface {
	New() string
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.NewString() }
