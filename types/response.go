package types

// SearchResult is one retrieved chunk in the /search response.
type SearchResult struct {
	Content  string  `json:"content"`
	Source   string  `json:"source"`
	JobTitle string  `json:"job_title"`
	Score    float64 `json:"score"`
	ID       string  `json:"id"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
