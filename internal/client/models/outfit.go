package models

// Outfit is one tagged clothing image in a wardrobe. OutfitID is assigned by
// the backend and never changed by the client.
type Outfit struct {
	OutfitID   string `json:"outfit_id"`
	WardrobeID string `json:"wardrobe_id"`
	ImageURL   string `json:"image_url"`
	Tags       Tags   `json:"tags"`
}

// Clone returns a copy whose tag mapping can be edited independently.
func (o Outfit) Clone() Outfit {
	o.Tags = o.Tags.Clone()
	return o
}

// OutfitRef is a reference to an outfit by id, resolved to a full Outfit on
// demand.
type OutfitRef string

// UploadFile is an image picked for upload.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SuggestionResult is what the backend picked for a temperature and query.
type SuggestionResult struct {
	Outfits           []Outfit
	CompositeImageURL string
}
