package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Passenger is a single traveller on a booking.
type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Berth  string `json:"berth,omitempty"`
}

// ContactDetails is where the carrier and gateway reach the customer.
type ContactDetails struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is the record owned exclusively by the booking store. Callers hold
// only copies; every mutation goes through the store.
type Booking struct {
	ID          uuid.UUID      `json:"id"`
	TrainID     string         `json:"trainId"`
	TrainName   string         `json:"trainName,omitempty"`
	ClassCode   string         `json:"classCode"`
	JourneyDate string         `json:"journeyDate"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Quota       string         `json:"quota"`
	Passengers  []Passenger    `json:"passengerDetails"`
	Contact     ContactDetails `json:"contactDetails"`
	TotalAmount float64        `json:"totalAmount"`
	Currency    string         `json:"currency"`
	Status      Status         `json:"status"`
	PaymentID   string         `json:"paymentId,omitempty"`   // set once payment succeeds
	PNR         string         `json:"pnr,omitempty"`         // set once carrier-confirmed
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	CancelledAt *time.Time     `json:"cancelledAt,omitempty"`
}

// IsConfirmed reports whether the booking reached its terminal success state.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled reports whether the booking reached its terminal failure state.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// clone deep-copies the booking so store internals never escape.
func (b *Booking) clone() *Booking {
	out := *b
	out.Passengers = append([]Passenger(nil), b.Passengers...)
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		out.CancelledAt = &t
	}
	return &out
}
