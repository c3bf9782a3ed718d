package trains

import (
	"context"
	"sync"
)

// Catalog is the service-search provider the pipeline consumes. The memory
// implementation stands in for a carrier data feed; callers treat any error
// as the upstream source being unreachable.
type Catalog interface {
	// FindByRoute returns candidate trains for a journey, in provider order.
	FindByRoute(ctx context.Context, from, to, date string) ([]Train, error)
	// GetByID returns a single train, or found=false when unknown.
	GetByID(ctx context.Context, id string) (*Train, bool, error)
	// GetByNumber looks a train up by its public train number.
	GetByNumber(ctx context.Context, trainNumber string) (*Train, bool, error)
}

type memoryCatalog struct {
	mu     sync.RWMutex
	trains []Train
}

// NewMemoryCatalog builds a catalog seeded with the production train set.
func NewMemoryCatalog() Catalog {
	return &memoryCatalog{trains: seedTrains()}
}

func (c *memoryCatalog) FindByRoute(ctx context.Context, from, to, date string) ([]Train, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	// The feed does not filter by station pair; it stamps the requested
	// endpoints onto every running service, matching the upstream behavior.
	results := make([]Train, 0, len(c.trains))
	for _, t := range c.trains {
		clone := cloneTrain(t)
		clone.From = from
		clone.To = to
		results = append(results, clone)
	}
	return results, nil
}

func (c *memoryCatalog) GetByID(ctx context.Context, id string) (*Train, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.trains {
		if t.ID == id {
			clone := cloneTrain(t)
			return &clone, true, nil
		}
	}
	return nil, false, nil
}

func (c *memoryCatalog) GetByNumber(ctx context.Context, trainNumber string) (*Train, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.trains {
		if t.TrainNumber == trainNumber {
			clone := cloneTrain(t)
			return &clone, true, nil
		}
	}
	return nil, false, nil
}

// cloneTrain deep-copies a train so callers never alias catalog state.
func cloneTrain(t Train) Train {
	clone := t
	clone.DaysOfRun = append([]string(nil), t.DaysOfRun...)
	clone.Amenities = append([]string(nil), t.Amenities...)
	clone.Classes = make(map[string]ClassInventory, len(t.Classes))
	for code, inv := range t.Classes {
		if inv.WaitlistCount != nil {
			wl := *inv.WaitlistCount
			inv.WaitlistCount = &wl
		}
		clone.Classes[code] = inv
	}
	return clone
}

func intPtr(v int) *int { return &v }

func seedTrains() []Train {
	return []Train{
		{
			ID:            "12301",
			TrainName:     "Rajdhani Express",
			TrainNumber:   "12301",
			FromCode:      "NDLS",
			ToCode:        "HWH",
			DepartureTime: "17:00",
			ArrivalTime:   "10:05+1",
			Duration:      "17h 05m",
			DaysOfRun:     []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
			Classes: map[string]ClassInventory{
				"1A": {SeatsAvailable: 12, Price: 4825},
				"2A": {SeatsAvailable: 8, Price: 2895},
				"3A": {SeatsAvailable: 15, Price: 2035},
			},
			Amenities:   []string{"WiFi", "Catering", "Pantry Car"},
			Rating:      4.5,
			Punctuality: 92,
		},
		{
			ID:            "12002",
			TrainName:     "Shatabdi Express",
			TrainNumber:   "12002",
			FromCode:      "NDLS",
			ToCode:        "KLK",
			DepartureTime: "06:00",
			ArrivalTime:   "14:25",
			Duration:      "8h 25m",
			DaysOfRun:     []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
			Classes: map[string]ClassInventory{
				"EC": {SeatsAvailable: 25, Price: 1650},
				"CC": {SeatsAvailable: 18, Price: 825},
			},
			Amenities:   []string{"WiFi", "Meals", "Tea/Coffee"},
			Rating:      4.3,
			Punctuality: 89,
		},
		{
			ID:            "12273",
			TrainName:     "Duronto Express",
			TrainNumber:   "12273",
			FromCode:      "NDLS",
			ToCode:        "BCT",
			DepartureTime: "21:55",
			ArrivalTime:   "08:35+1",
			Duration:      "15h 40m",
			DaysOfRun:     []string{"Tue", "Thu", "Sun"},
			Classes: map[string]ClassInventory{
				"1A": {SeatsAvailable: 5, Price: 3850},
				"2A": {SeatsAvailable: 12, Price: 2195},
				"3A": {SeatsAvailable: 28, Price: 1465},
				"SL": {SeatsAvailable: 0, Price: 565, WaitlistCount: intPtr(45)},
			},
			Amenities:   []string{"Pantry Car", "Charging Points"},
			Rating:      4.1,
			Punctuality: 87,
		},
		{
			ID:            "12595",
			TrainName:     "Humsafar Express",
			TrainNumber:   "12595",
			FromCode:      "NDLS",
			ToCode:        "MAS",
			DepartureTime: "15:50",
			ArrivalTime:   "22:15+1",
			Duration:      "30h 25m",
			DaysOfRun:     []string{"Wed", "Sat"},
			Classes: map[string]ClassInventory{
				"3A": {SeatsAvailable: 35, Price: 2850},
			},
			Amenities:   []string{"WiFi", "Meals", "CCTV", "Fire Safety"},
			Rating:      4.2,
			Punctuality: 85,
		},
		{
			ID:            "12082",
			TrainName:     "Jan Shatabdi Express",
			TrainNumber:   "12082",
			FromCode:      "NDLS",
			ToCode:        "LKO",
			DepartureTime: "14:25",
			ArrivalTime:   "20:30",
			Duration:      "6h 05m",
			DaysOfRun:     []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Classes: map[string]ClassInventory{
				"CC": {SeatsAvailable: 42, Price: 485},
				"2S": {SeatsAvailable: 28, Price: 145},
			},
			Amenities:   []string{"Catering", "Tea/Coffee"},
			Rating:      3.9,
			Punctuality: 83,
		},
	}
}
