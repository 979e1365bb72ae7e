package catalog

// Query identifies a book in the external catalog. ISBN takes precedence over
// Title when both are set.
type Query struct {
	ISBN  string
	Title string
}

// Volume is a single catalog entry as returned by the upstream API.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo carries the book metadata of a volume.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	Categories          []string             `json:"categories"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
}

// IndustryIdentifier is an ISBN entry. Type is "ISBN_10" or "ISBN_13".
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds cover image URLs.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// Result is the outcome of a catalog search. A failed request and an empty
// result set look identical to callers: Found is false and Items is empty.
type Result struct {
	Found bool     `json:"found"`
	Items []Volume `json:"items"`
}

// searchResponse mirrors the upstream response body.
type searchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}
