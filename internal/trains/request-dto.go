package trains

// SearchRequest is the body of POST /trains/search.
type SearchRequest struct {
	From        string `json:"from" binding:"required"`
	To          string `json:"to" binding:"required"`
	JourneyDate string `json:"journeyDate" binding:"required,datetime=2006-01-02"`
	Passengers  int    `json:"passengers" binding:"required,min=1,max=6"`
	Class       string `json:"class" binding:"required,oneof=1A 2A 3A SL 2S CC EC"`
	Quota       string `json:"quota" binding:"required,oneof=GN TQ LD SS HP"`
}
