package core

// Track represents a playable catalog track.
type Track struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Artist  string   `json:"artist"`
	Album   string   `json:"album,omitempty"`
	Valence *float64 `json:"valence,omitempty"`
}
