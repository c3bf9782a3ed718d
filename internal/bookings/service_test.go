package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/confirmation"
	"yatra/internal/notifications"
	"yatra/internal/payments"
	"yatra/internal/shared/apperror"
	"yatra/internal/trains"
	"yatra/pkg/logger"
)

type stubChecker struct {
	avail *trains.Availability
	err   error
}

func (s *stubChecker) CheckAvailability(ctx context.Context, trainID, classCode, date string) (*trains.Availability, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.avail, nil
}

type stubGateway struct {
	result *payments.ChargeResult
	err    error

	mu   sync.Mutex
	last payments.ChargeRequest
}

func (s *stubGateway) Charge(ctx context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error) {
	s.mu.Lock()
	s.last = req
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubConfirmer struct {
	conf *confirmation.Confirmation
	err  error
}

func (s *stubConfirmer) Confirm(ctx context.Context, req confirmation.Request) (*confirmation.Confirmation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.conf, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
}

func (p *capturePublisher) Publish(ctx context.Context, event *notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) types() []notifications.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifications.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type serviceFixture struct {
	service   Service
	repo      Repository
	checker   *stubChecker
	gateway   *stubGateway
	confirmer *stubConfirmer
	publisher *capturePublisher
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:      NewMemoryRepository(),
		checker:   &stubChecker{avail: &trains.Availability{Available: true, SeatsLeft: 8, Fare: 2895}},
		gateway:   &stubGateway{result: &payments.ChargeResult{PaymentID: "pay_1700000000_abc123"}},
		confirmer: &stubConfirmer{conf: &confirmation.Confirmation{PNR: "8812345670"}},
		publisher: &capturePublisher{},
	}
	f.service = NewService(f.repo, f.checker, f.gateway, f.confirmer, f.publisher,
		"INR", DefaultTimeouts(), logger.New())
	return f
}

func validBookingRequest() BookingRequest {
	return BookingRequest{
		TrainID:     "12301",
		ClassCode:   "2A",
		Passengers:  2,
		JourneyDate: "2026-09-15",
		From:        "New Delhi",
		To:          "Howrah",
		Quota:       "GN",
		PassengerDetails: []PassengerDetail{
			{Name: "Asha Rao", Age: 34, Gender: "F", Berth: "LB"},
			{Name: "Ravi Rao", Age: 36, Gender: "M"},
		},
		ContactDetails: ContactRequest{Email: "asha@example.com", Phone: "9876543210"},
	}
}

func TestBookTrainFullSuccess(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.service.BookTrain(ctx, validBookingRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Fare 2895 x 2 passengers.
	assert.Equal(t, 5790.0, resp.TotalAmount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "8812345670", resp.PNR)
	assert.Equal(t, "pay_1700000000_abc123", resp.PaymentID)

	// The gateway was charged the priced total.
	assert.Equal(t, 5790.0, f.gateway.last.Amount)
	assert.Equal(t, "INR", f.gateway.last.Currency)

	id, err := uuid.Parse(resp.BookingID)
	require.NoError(t, err)
	stored, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.IsConfirmed())
	assert.Equal(t, "8812345670", stored.PNR)

	assert.Equal(t, []notifications.EventType{notifications.EventBookingConfirmed}, f.publisher.types())
}

func TestBookTrainNotAvailable(t *testing.T) {
	f := newServiceFixture()
	f.checker.avail = &trains.Availability{Available: false}

	resp, err := f.service.BookTrain(context.Background(), validBookingRequest())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperror.ErrNotAvailable)

	// No booking record may exist for inventory never confirmed available.
	all, repoErr := f.repo.ListByEmail(context.Background(), "asha@example.com")
	require.NoError(t, repoErr)
	assert.Empty(t, all)
}

func TestBookTrainAvailabilityTimeout(t *testing.T) {
	f := newServiceFixture()
	f.checker.err = context.DeadlineExceeded

	resp, err := f.service.BookTrain(context.Background(), validBookingRequest())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperror.ErrDependencyUnavailable)

	all, repoErr := f.repo.ListByEmail(context.Background(), "asha@example.com")
	require.NoError(t, repoErr)
	assert.Empty(t, all)
}

func TestBookTrainPaymentFailureCompensates(t *testing.T) {
	f := newServiceFixture()
	f.gateway.err = errors.New("card declined")

	resp, err := f.service.BookTrain(context.Background(), validBookingRequest())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperror.ErrPaymentFailed)

	// The PENDING booking was compensated to CANCELLED, never left dangling.
	all, repoErr := f.repo.ListByEmail(context.Background(), "asha@example.com")
	require.NoError(t, repoErr)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsCancelled())
	assert.Empty(t, all[0].PaymentID)
	assert.NotNil(t, all[0].CancelledAt)

	assert.Equal(t, []notifications.EventType{notifications.EventPaymentFailed}, f.publisher.types())
}

func TestBookTrainConfirmationFailureLeavesPaid(t *testing.T) {
	f := newServiceFixture()
	f.confirmer.err = errors.New("carrier returned 503")

	resp, err := f.service.BookTrain(context.Background(), validBookingRequest())
	assert.ErrorIs(t, err, apperror.ErrConfirmationFailed)

	// Payment was captured: the caller still gets the booking in PAID.
	require.NotNil(t, resp)
	assert.Equal(t, "PAID", resp.Status)
	assert.Empty(t, resp.PNR)
	assert.Equal(t, "pay_1700000000_abc123", resp.PaymentID)

	// The charge is never reverted by a confirmation failure.
	all, repoErr := f.repo.ListByEmail(context.Background(), "asha@example.com")
	require.NoError(t, repoErr)
	require.Len(t, all, 1)
	assert.Equal(t, StatusPaid, all[0].Status)
	assert.Empty(t, all[0].PNR)

	assert.Equal(t, []notifications.EventType{notifications.EventConfirmationHeld}, f.publisher.types())
}

func TestBookTrainWithoutPublisher(t *testing.T) {
	f := newServiceFixture()
	f.service = NewService(f.repo, f.checker, f.gateway, f.confirmer, nil,
		"INR", DefaultTimeouts(), logger.New())

	resp, err := f.service.BookTrain(context.Background(), validBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestGetBookingNotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GetBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCancelBooking(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	booking := newTestBooking("asha@example.com")
	require.NoError(t, f.repo.Create(ctx, booking))

	cancelled, err := f.service.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled())
	assert.Equal(t, []notifications.EventType{notifications.EventBookingCancelled}, f.publisher.types())

	// Cancelling twice is a conflict, not a no-op.
	_, err = f.service.CancelBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestCancelConfirmedBookingRejected(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.service.BookTrain(ctx, validBookingRequest())
	require.NoError(t, err)
	id, err := uuid.Parse(resp.BookingID)
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, id)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestGetBookingsByEmail(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	_, err := f.service.BookTrain(ctx, validBookingRequest())
	require.NoError(t, err)

	got, err := f.service.GetBookingsByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12301", got[0].TrainID)
}
