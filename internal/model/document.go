package model

// Document is the persisted wardrobe layout: a single record with two
// top-level maps, keyed by scanner ID and tag ID respectively.
type Document struct {
	Scanners map[string]Scanner  `json:"scanners"`
	Garments map[string]*Garment `json:"garments"`
}

// NewDocument returns an empty document with both maps allocated.
func NewDocument() *Document {
	return &Document{
		Scanners: map[string]Scanner{},
		Garments: map[string]*Garment{},
	}
}
