package vectorstore

// Document is a validated article to be stored.
type Document struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date"`
	Text          string `json:"text"`
}

// StoredDocument is one similarity-search match. Display fields that were
// absent in the stored payload are empty strings. Distance is the store's
// similarity score converted so that lower means closer; callers treat it
// as an opaque rank key.
type StoredDocument struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Source        string  `json:"source"`
	PublishedDate string  `json:"published_date"`
	Text          string  `json:"text"`
	Distance      float32 `json:"distance"`
}
