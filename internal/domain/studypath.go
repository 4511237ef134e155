package domain

// VideoLink points at an external video resource for a concept.
type VideoLink struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// WebLink points at an external article or page for a concept.
type WebLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}

// LearningStep is one ordered step in a study path. Links are attached after
// generation by the external search fan-out and may be empty when providers
// are unavailable.
type LearningStep struct {
	Title        string      `json:"title"`
	Summary      string      `json:"summary"`
	YouTubeLinks []VideoLink `json:"youtube_links"`
	WebLinks     []WebLink   `json:"web_links"`
}
