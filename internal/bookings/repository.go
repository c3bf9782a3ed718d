package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"yatra/internal/shared/apperror"
)

// Patch carries the fields a status transition may set. Zero values leave
// the corresponding booking fields untouched.
type Patch struct {
	PaymentID string
	PNR       string
}

// Repository is the booking store: the sole owner of Booking records.
// Mutations of a single booking identifier are serialized; racing updates
// resolve to exactly one winner, the loser observing ErrInvalidTransition.
type Repository interface {
	// Create persists a new booking in PENDING with a fresh identifier.
	Create(ctx context.Context, booking *Booking) error
	// GetByID returns a copy of the booking or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// UpdateStatus applies a lifecycle transition atomically. Disallowed
	// transitions fail with ErrInvalidTransition and change nothing.
	UpdateStatus(ctx context.Context, id uuid.UUID, target Status, patch Patch) (*Booking, error)
	// ListByEmail returns bookings whose contact email matches, newest first.
	ListByEmail(ctx context.Context, email string) ([]Booking, error)
}

type entry struct {
	mu      sync.Mutex
	booking *Booking
}

type memoryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	order   []uuid.UUID // insertion order, for stable listing
}

// NewMemoryRepository creates an in-memory booking store.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		entries: make(map[uuid.UUID]*entry),
	}
}

func (r *memoryRepository) Create(ctx context.Context, booking *Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()
	booking.ID = uuid.New()
	booking.Status = StatusPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[booking.ID] = &entry{booking: booking.clone()}
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, apperror.ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.booking.clone(), nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, target Status, patch Patch) (*Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !target.IsValid() {
		return nil, fmt.Errorf("status %q: %w", target, apperror.ErrInvalidTransition)
	}

	e, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, apperror.ErrNotFound)
	}

	// The per-entry mutex gives updates on one identifier a single total
	// order; the transition check below decides the race.
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("booking %s: %s -> %s: %w",
			id, e.booking.Status, target, apperror.ErrInvalidTransition)
	}

	now := time.Now()
	e.booking.Status = target
	e.booking.UpdatedAt = now
	if patch.PaymentID != "" {
		e.booking.PaymentID = patch.PaymentID
	}
	if patch.PNR != "" {
		e.booking.PNR = patch.PNR
	}
	if target == StatusCancelled {
		e.booking.CancelledAt = &now
	}

	return e.booking.clone(), nil
}

func (r *memoryRepository) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	ids := append([]uuid.UUID(nil), r.order...)
	r.mu.RUnlock()

	var out []Booking
	for i := len(ids) - 1; i >= 0; i-- {
		e, ok := r.lookup(ids[i])
		if !ok {
			continue
		}
		e.mu.Lock()
		if e.booking.Contact.Email == email {
			out = append(out, *e.booking.clone())
		}
		e.mu.Unlock()
	}
	return out, nil
}

func (r *memoryRepository) lookup(id uuid.UUID) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}
