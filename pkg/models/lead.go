package models

// Backyard development status values returned by the vision pipeline
const (
	BackyardUndeveloped = "undeveloped"
	BackyardPartial     = "partial"
	BackyardLandscaped  = "landscaped"
	BackyardUncertain   = "uncertain"
)

// Coordinates of the property centroid
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ZillowMeta holds the property attributes pulled from public listing data.
// Every field is optional; the backend only fills what it could resolve.
type ZillowMeta struct {
	ZPID       *string  `json:"zpid,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Beds       *float64 `json:"beds,omitempty"`
	Baths      *float64 `json:"baths,omitempty"`
	LivingArea *float64 `json:"livingArea,omitempty"`
	LotSize    *float64 `json:"lotSize,omitempty"`
}

// ImageSize is the pixel dimensions of an aerial image
type ImageSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// ImageryMeta describes the aerial image captured for the property
type ImageryMeta struct {
	ImageURL string     `json:"image_url"`
	Zoom     *int       `json:"zoom,omitempty"`
	Size     *ImageSize `json:"size,omitempty"`
}

// VisionMeta is the backyard classification produced from the aerial image
type VisionMeta struct {
	BackyardStatus     string   `json:"backyard_status"`
	BackyardConfidence *float64 `json:"backyard_confidence,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

// Lead is one scored property record as returned by the leads API.
// Leads are immutable once decoded: they are only held for display,
// serialized into downloads, or dropped when the order expires.
type Lead struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Zillow      ZillowMeta  `json:"zillow"`
	Imagery     ImageryMeta `json:"imagery"`
	Vision      VisionMeta  `json:"vision"`
	LeadScore   float64     `json:"lead_score"`
}

// LeadBatch is the response envelope for a leads fetch
type LeadBatch struct {
	Leads []Lead `json:"leads"`
	Count int    `json:"count"`
}
