package trains

// Class codes and quotas accepted by the booking pipeline. These mirror the
// carrier's reservation code sets.
const (
	ClassCodes = "1A 2A 3A SL 2S CC EC"
	QuotaCodes = "GN TQ LD SS HP"
)

// ClassInventory is the availability of a single travel class on a train.
// A class with zero seats may still be offered when a waitlist is open.
type ClassInventory struct {
	SeatsAvailable int     `json:"available"`
	Price          float64 `json:"price"`
	WaitlistCount  *int    `json:"waitingList,omitempty"`
}

// Bookable reports whether this class can accept a new booking.
func (c ClassInventory) Bookable() bool {
	return c.SeatsAvailable > 0 || c.WaitlistCount != nil
}

// Train is one candidate service in a search result. Field names follow the
// public API wire format.
type Train struct {
	ID            string                    `json:"id"`
	TrainName     string                    `json:"trainName"`
	TrainNumber   string                    `json:"trainNumber"`
	From          string                    `json:"from"`
	To            string                    `json:"to"`
	FromCode      string                    `json:"fromCode"`
	ToCode        string                    `json:"toCode"`
	DepartureTime string                    `json:"departureTime"`
	ArrivalTime   string                    `json:"arrivalTime"`
	Duration      string                    `json:"duration"`
	DaysOfRun     []string                  `json:"daysOfRun"`
	Classes       map[string]ClassInventory `json:"classes"`
	Amenities     []string                  `json:"amenities"`
	Rating        float64                   `json:"rating"`
	Punctuality   int                       `json:"punctuality"`
}

// Availability answers whether a (train, class, date) tuple currently has
// capacity. Pure query result, never a partial view.
type Availability struct {
	Available     bool    `json:"available"`
	SeatsLeft     int     `json:"seatsLeft"`
	WaitlistCount int     `json:"waitlistCount,omitempty"`
	Fare          float64 `json:"fare"`
}
