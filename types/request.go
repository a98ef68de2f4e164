package types

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k" binding:"omitempty,min=1,max=20"`
}
