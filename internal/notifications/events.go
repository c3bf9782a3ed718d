package notifications

import (
	"time"
)

// EventType labels a booking lifecycle event on the stream.
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
	EventPaymentFailed    EventType = "PAYMENT_FAILED"
	EventConfirmationHeld EventType = "CONFIRMATION_PENDING"
)

// BookingEvent is published after each booking state change so downstream
// consumers (email, ops reconciliation) can react asynchronously.
type BookingEvent struct {
	Type        EventType `json:"type"`
	BookingID   string    `json:"bookingId"`
	TrainID     string    `json:"trainId"`
	ClassCode   string    `json:"classCode"`
	PNR         string    `json:"pnr,omitempty"`
	PaymentID   string    `json:"paymentId,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	Email       string    `json:"email"`
	OccurredAt  time.Time `json:"occurredAt"`
}
