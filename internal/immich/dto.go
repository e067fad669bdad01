package immich

// searchRequest is the body for POST /api/search/metadata
type searchRequest struct {
	Page         int      `json:"page"`
	Size         int      `json:"size"`
	WithExif     bool     `json:"withExif"`
	IsNotInAlbum *bool    `json:"isNotInAlbum,omitempty"`
	TagIDs       []string `json:"tagIds,omitempty"`
	Model        *string  `json:"model,omitempty"`
}

// searchResponse is the envelope returned by the metadata search
type searchResponse struct {
	Assets assetPage `json:"assets"`
}

type assetPage struct {
	Items []assetDTO `json:"items"`
	// NextPage is the next page number as a string, or null when exhausted
	NextPage *string `json:"nextPage"`
}

type assetDTO struct {
	ID               string   `json:"id"`
	OriginalFileName string   `json:"originalFileName"`
	FileCreatedAt    string   `json:"fileCreatedAt"`
	ExifInfo         *exifDTO `json:"exifInfo"`
}

type exifDTO struct {
	Model            string   `json:"model"`
	DateTimeOriginal string   `json:"dateTimeOriginal"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

// updateRequest is the body for PUT /api/assets/{id}
type updateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
