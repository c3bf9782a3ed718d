package bookings

import (
	"fmt"

	"yatra/internal/shared/utils/validation"
)

// PassengerDetail is one traveller record in a booking request.
type PassengerDetail struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age" binding:"gte=0"`
	Gender string `json:"gender" binding:"required,oneof=M F T"`
	Berth  string `json:"berth,omitempty" binding:"omitempty,oneof=LB MB UB SL SU"`
}

// ContactRequest carries the booking's contact details.
type ContactRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// BookingRequest is the body of POST /trains/book.
type BookingRequest struct {
	TrainID          string            `json:"trainId" binding:"required"`
	ClassCode        string            `json:"classCode" binding:"required,oneof=1A 2A 3A SL 2S CC EC"`
	Passengers       int               `json:"passengers" binding:"required,min=1,max=6"`
	JourneyDate      string            `json:"journeyDate" binding:"required,datetime=2006-01-02"`
	From             string            `json:"from" binding:"required"`
	To               string            `json:"to" binding:"required"`
	Quota            string            `json:"quota" binding:"required,oneof=GN TQ LD SS HP"`
	PassengerDetails []PassengerDetail `json:"passengerDetails" binding:"required,min=1,max=6,dive"`
	ContactDetails   ContactRequest    `json:"contactDetails" binding:"required"`
}

// Validate runs the cross-field constraints binding tags cannot express.
// It returns every violation, not just the first.
func (r *BookingRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError

	if len(r.PassengerDetails) != r.Passengers {
		errs = append(errs, validation.NewFieldError(
			"passengerDetails", "length",
			fmt.Sprintf("passengerDetails must contain exactly %d entries, got %d",
				r.Passengers, len(r.PassengerDetails)),
		))
	}

	return errs
}
