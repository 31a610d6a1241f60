package domain

// Media is the normalized media record handed to consumers. It is the
// single canonical representation; edge layers serialize it into whatever
// shape a caller needs.
type Media struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Created     int64    `json:"created"`
	CreatedStr  string   `json:"createdStr"`
	Link        string   `json:"link"`
	Poster      string   `json:"poster,omitempty"`
	// Children holds the items of a carousel album. Children never have
	// children of their own.
	Children []Media `json:"children,omitempty"`
}
