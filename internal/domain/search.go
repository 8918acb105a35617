package domain

// SearchResult is the merged output of one federated search: three
// independent result sets for a single query string
type SearchResult struct {
	Items    []ItemResult    `json:"items"`
	Catalogs []CatalogResult `json:"catalogs"`
	Profiles []ProfileResult `json:"profiles"`
}

// IDSet is an immutable set of entity ids, used to annotate result rows
// with the viewer's liked/bookmarked state
type IDSet map[string]struct{}

// NewIDSet builds an IDSet from a slice of ids
func NewIDSet(ids []string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// CheckResult is the outcome of an external safety check
type CheckResult struct {
	Safe  bool   `json:"safe"`
	Error string `json:"error,omitempty"`
}

// Track is one music search result mapped from the external music API
type Track struct {
	TrackID    int64  `json:"trackId"`
	PreviewURL string `json:"previewUrl"`
	TrackName  string `json:"trackName"`
	Artist     string `json:"artist"`
	AlbumArt   string `json:"albumArt"`
	DeezerURL  string `json:"deezerUrl"`
	Duration   int    `json:"duration"`
}
