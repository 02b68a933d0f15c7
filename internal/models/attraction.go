package models

import "time"

// Attraction represents a tourist attraction stored locally
type Attraction struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Addr1     string    `json:"addr1" db:"addr1"`
	Addr2     string    `json:"addr2,omitempty" db:"addr2"`
	Tel       string    `json:"tel,omitempty" db:"tel"`
	Image     string    `json:"image,omitempty" db:"image"`
	MapX      float64   `json:"mapx" db:"mapx"` // longitude
	MapY      float64   `json:"mapy" db:"mapy"` // latitude
	AreaCode  string    `json:"areacode,omitempty" db:"areacode"`
	Overview  string    `json:"overview,omitempty" db:"overview"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Food represents a restaurant record
type Food struct {
	ID    int64   `json:"id" db:"id"`
	Title string  `json:"title" db:"title"`
	Addr1 string  `json:"addr1" db:"addr1"`
	Tel   string  `json:"tel,omitempty" db:"tel"`
	Image string  `json:"image,omitempty" db:"image"`
	MapX  float64 `json:"mapx" db:"mapx"`
	MapY  float64 `json:"mapy" db:"mapy"`
}

// PetTourSpot is a pet-friendly tourist spot mirrored from the open-data API
type PetTourSpot struct {
	ID            int64   `json:"id" db:"id"`
	ContentID     string  `json:"contentid" db:"content_id"`
	Title         string  `json:"title" db:"title"`
	Addr1         string  `json:"addr1" db:"addr1"`
	Addr2         string  `json:"addr2,omitempty" db:"addr2"`
	AreaCode      string  `json:"areacode,omitempty" db:"area_code"`
	SigunguCode   string  `json:"sigungucode,omitempty" db:"sigungu_code"`
	MapX          float64 `json:"mapx" db:"mapx"`
	MapY          float64 `json:"mapy" db:"mapy"`
	Tel           string  `json:"tel,omitempty" db:"tel"`
	FirstImage    string  `json:"firstimage,omitempty" db:"first_image"`
	ContentTypeID string  `json:"contenttypeid,omitempty" db:"content_type_id"`
	Cat1          string  `json:"cat1,omitempty" db:"cat1"`
	Cat2          string  `json:"cat2,omitempty" db:"cat2"`
	Cat3          string  `json:"cat3,omitempty" db:"cat3"`
	Overview      string  `json:"overview,omitempty" db:"overview"`
	CreatedTime   string  `json:"createdtime,omitempty" db:"created_time"`
	ModifiedTime  string  `json:"modifiedtime,omitempty" db:"modified_time"`
}

// AttractionFilter narrows attraction listings
type AttractionFilter struct {
	Location string // substring of addr1
}

// CatalogQuery narrows catalog lookups across attractions, foods and pet spots.
// Address matches addr1 only; Keyword matches title or addr1. Both are
// case-insensitive substrings.
type CatalogQuery struct {
	Address string
	Keyword string
	Limit   int
}

// AttractionPatch holds a partial attraction update; nil fields are kept.
type AttractionPatch struct {
	Title    *string
	Addr1    *string
	Addr2    *string
	Tel      *string
	Image    *string
	MapX     *float64
	MapY     *float64
	AreaCode *string
	Overview *string
}

// Apply returns a with the patch's non-nil fields written over it.
func (p AttractionPatch) Apply(a Attraction) Attraction {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&a.Title, p.Title)
	setString(&a.Addr1, p.Addr1)
	setString(&a.Addr2, p.Addr2)
	setString(&a.Tel, p.Tel)
	setString(&a.Image, p.Image)
	setString(&a.AreaCode, p.AreaCode)
	setString(&a.Overview, p.Overview)
	if p.MapX != nil {
		a.MapX = *p.MapX
	}
	if p.MapY != nil {
		a.MapY = *p.MapY
	}
	return a
}
