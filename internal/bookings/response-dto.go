package bookings

// BookingConfirmationResponse is the payload of POST /trains/book. On the
// full success path Status is CONFIRMED and PNR is set; when the carrier
// confirmation is pending, Status is PAID and PNR is empty.
type BookingConfirmationResponse struct {
	BookingID   string  `json:"bookingId"`
	PNR         string  `json:"pnr,omitempty"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	PaymentID   string  `json:"paymentId,omitempty"`
}

func toConfirmationResponse(b *Booking) *BookingConfirmationResponse {
	return &BookingConfirmationResponse{
		BookingID:   b.ID.String(),
		PNR:         b.PNR,
		Status:      b.Status.String(),
		TotalAmount: b.TotalAmount,
		Currency:    b.Currency,
		PaymentID:   b.PaymentID,
	}
}
