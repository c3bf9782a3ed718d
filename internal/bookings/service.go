package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yatra/internal/confirmation"
	"yatra/internal/notifications"
	"yatra/internal/payments"
	"yatra/internal/shared/apperror"
	"yatra/internal/trains"
	"yatra/pkg/logger"
)

// AvailabilityChecker answers whether a (train, class, date) tuple has
// capacity. Declared here so the orchestrator depends only on the query it
// needs, not the whole train service.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, trainID, classCode, date string) (*trains.Availability, error)
}

// Timeouts bounds every collaborator call the workflow makes. A timeout is
// treated identically to a failure response from that collaborator.
type Timeouts struct {
	Availability time.Duration
	Payment      time.Duration
	Confirmation time.Duration
}

// DefaultTimeouts returns conservative bounds for the workflow steps.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Availability: 5 * time.Second,
		Payment:      10 * time.Second,
		Confirmation: 10 * time.Second,
	}
}

// Service is the booking orchestrator. It sequences availability, store
// creation, payment, and carrier confirmation, and owns all compensation.
type Service interface {
	BookTrain(ctx context.Context, req BookingRequest) (*BookingConfirmationResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetBookingsByEmail(ctx context.Context, email string) ([]Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
}

type service struct {
	repo         Repository
	availability AvailabilityChecker
	gateway      payments.Gateway
	confirmer    confirmation.Service
	publisher    notifications.Publisher // optional
	currency     string
	timeouts     Timeouts
	log          *logger.Logger
}

// NewService creates the booking orchestrator. publisher may be nil; booking
// events are then dropped.
func NewService(
	repo Repository,
	availability AvailabilityChecker,
	gateway payments.Gateway,
	confirmer confirmation.Service,
	publisher notifications.Publisher,
	currency string,
	timeouts Timeouts,
	log *logger.Logger,
) Service {
	return &service{
		repo:         repo,
		availability: availability,
		gateway:      gateway,
		confirmer:    confirmer,
		publisher:    publisher,
		currency:     currency,
		timeouts:     timeouts,
		log:          log,
	}
}

// BookTrain runs the booking workflow. Each step gates the next:
//
//  1. availability check — unavailable fails before any record exists
//  2. store create — booking enters PENDING
//  3. payment — success moves to PAID; failure compensates to CANCELLED
//  4. carrier confirmation — success moves to CONFIRMED; failure leaves the
//     booking PAID for out-of-band reconciliation
//
// No step is retried here; collaborators own their own retry policies.
func (s *service) BookTrain(ctx context.Context, req BookingRequest) (*BookingConfirmationResponse, error) {
	// Step 1: availability gate. No booking record may exist for inventory
	// that was never confirmed available.
	avail, err := s.checkAvailability(ctx, req)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, fmt.Errorf("train %s class %s on %s: %w",
			req.TrainID, req.ClassCode, req.JourneyDate, apperror.ErrNotAvailable)
	}

	// Step 2: price and create. The store assigns the identifier and PENDING.
	booking := &Booking{
		TrainID:     req.TrainID,
		ClassCode:   req.ClassCode,
		JourneyDate: req.JourneyDate,
		From:        req.From,
		To:          req.To,
		Quota:       req.Quota,
		Passengers:  toPassengers(req.PassengerDetails),
		Contact:     ContactDetails{Email: req.ContactDetails.Email, Phone: req.ContactDetails.Phone},
		TotalAmount: avail.Fare * float64(req.Passengers),
		Currency:    s.currency,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.TrainID, booking.ClassCode)

	// Step 3: payment. On failure the booking is compensated to CANCELLED;
	// a PENDING booking must never survive this step.
	charge, err := s.charge(ctx, booking)
	if err != nil {
		s.log.LogPaymentFailed(ctx, booking.ID.String(), err)
		s.compensate(ctx, booking)
		return nil, fmt.Errorf("booking %s: %w: %v", booking.ID, apperror.ErrPaymentFailed, err)
	}

	paid, err := s.repo.UpdateStatus(ctx, booking.ID, StatusPaid, Patch{PaymentID: charge.PaymentID})
	if err != nil {
		// A concurrent cancellation won the race; the charge must not be
		// applied over it.
		return nil, fmt.Errorf("booking %s: record payment: %w", booking.ID, err)
	}

	// Step 4: carrier confirmation. On failure the booking stays PAID and is
	// surfaced to the caller as payment captured, confirmation pending.
	conf, err := s.confirm(ctx, paid)
	if err != nil {
		s.log.LogDependencyError(ctx, "confirmation", err)
		s.publish(ctx, notifications.EventConfirmationHeld, paid)
		return toConfirmationResponse(paid), fmt.Errorf("booking %s: %w: %v", paid.ID, apperror.ErrConfirmationFailed, err)
	}

	confirmed, err := s.repo.UpdateStatus(ctx, paid.ID, StatusConfirmed, Patch{PNR: conf.PNR})
	if err != nil {
		return nil, fmt.Errorf("booking %s: record confirmation: %w", paid.ID, err)
	}

	s.log.LogBookingConfirmed(ctx, confirmed.ID.String(), confirmed.PNR)
	s.publish(ctx, notifications.EventBookingConfirmed, confirmed)
	return toConfirmationResponse(confirmed), nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

func (s *service) GetBookingsByEmail(ctx context.Context, email string) ([]Booking, error) {
	return s.repo.ListByEmail(ctx, email)
}

// CancelBooking moves a booking to CANCELLED from any non-terminal state.
// It races fairly with an in-flight workflow: the store serializes updates
// per identifier, and whichever side loses observes ErrInvalidTransition.
func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	cancelled, err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled, Patch{})
	if err != nil {
		return nil, err
	}

	s.log.LogBookingCancelled(ctx, cancelled.ID.String(), "user request")
	s.publish(ctx, notifications.EventBookingCancelled, cancelled)
	return cancelled, nil
}

func (s *service) checkAvailability(ctx context.Context, req BookingRequest) (*trains.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Availability)
	defer cancel()

	avail, err := s.availability.CheckAvailability(ctx, req.TrainID, req.ClassCode, req.JourneyDate)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("availability check timed out: %w", apperror.ErrDependencyUnavailable)
		}
		return nil, err
	}
	return avail, nil
}

func (s *service) charge(ctx context.Context, booking *Booking) (*payments.ChargeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Payment)
	defer cancel()

	return s.gateway.Charge(ctx, payments.ChargeRequest{
		BookingID: booking.ID.String(),
		Amount:    booking.TotalAmount,
		Currency:  booking.Currency,
	})
}

func (s *service) confirm(ctx context.Context, booking *Booking) (*confirmation.Confirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Confirmation)
	defer cancel()

	return s.confirmer.Confirm(ctx, confirmation.Request{
		BookingID:   booking.ID.String(),
		TrainID:     booking.TrainID,
		ClassCode:   booking.ClassCode,
		JourneyDate: booking.JourneyDate,
		Passengers:  len(booking.Passengers),
		Quota:       booking.Quota,
	})
}

// compensate cancels a PENDING booking after a failed payment. Losing the
// transition race means a user cancellation already landed, which is the
// same terminal outcome.
func (s *service) compensate(ctx context.Context, booking *Booking) {
	cancelled, err := s.repo.UpdateStatus(ctx, booking.ID, StatusCancelled, Patch{})
	if err != nil {
		if !errors.Is(err, apperror.ErrInvalidTransition) {
			s.log.ErrorContext(ctx, "compensation failed",
				"booking_id", booking.ID.String(), "error", err.Error())
		}
		return
	}
	s.log.LogBookingCancelled(ctx, cancelled.ID.String(), "payment failed")
	s.publish(ctx, notifications.EventPaymentFailed, cancelled)
}

// publish emits a booking event; broker faults are logged, never propagated.
func (s *service) publish(ctx context.Context, eventType notifications.EventType, b *Booking) {
	if s.publisher == nil {
		return
	}

	event := &notifications.BookingEvent{
		Type:        eventType,
		BookingID:   b.ID.String(),
		TrainID:     b.TrainID,
		ClassCode:   b.ClassCode,
		PNR:         b.PNR,
		PaymentID:   b.PaymentID,
		TotalAmount: b.TotalAmount,
		Email:       b.Contact.Email,
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "booking event publish failed",
			"booking_id", b.ID.String(), "event_type", string(eventType), "error", err.Error())
	}
}

func toPassengers(details []PassengerDetail) []Passenger {
	out := make([]Passenger, 0, len(details))
	for _, d := range details {
		out = append(out, Passenger{
			Name:   d.Name,
			Age:    d.Age,
			Gender: d.Gender,
			Berth:  d.Berth,
		})
	}
	return out
}
