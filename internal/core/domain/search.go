package domain

// SearchCount is a search query together with how often it was requested.
type SearchCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
