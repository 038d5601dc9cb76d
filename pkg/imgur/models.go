package imgur

// albumResponse is the API envelope around a single album payload.
type albumResponse struct {
	Data    Album `json:"data"`
	Success bool  `json:"success"`
	Status  int   `json:"status"`
}

// imageListResponse is the API envelope around an album's image listing.
type imageListResponse struct {
	Data    []Image `json:"data"`
	Success bool    `json:"success"`
	Status  int     `json:"status"`
}

// Album represents the metadata of one imgur album. It is fetched once
// per album and never mutated afterwards.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AccountURL  string `json:"account_url"`
	AccountID   int64  `json:"account_id"`
	// Created is the album creation time in epoch seconds.
	Created     int64 `json:"datetime"`
	Views       int   `json:"views"`
	NSFW        bool  `json:"nsfw"`
	ImagesCount int   `json:"images_count"`
}

// Image represents one entry in an album's image listing. Listing order
// is significant: it defines display order and filename sequence.
type Image struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Type is the declared MIME type, e.g. "image/jpeg" or "video/mp4".
	Type string `json:"type"`
	// Link is the direct download URL for the media bytes.
	Link string `json:"link"`
}
