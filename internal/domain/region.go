// internal/domain/region.go
package domain

// Region is the singleton site configuration: branding, contact links and
// map defaults. At most one is stored.
type Region struct {
	ID              string  `json:"_id"`
	RegionName      string  `json:"region_name"`
	MetaDescription string  `json:"meta_description"`
	HeroTitle       string  `json:"hero_title"`
	HeroSubtitle    string  `json:"hero_subtitle"`
	RegionCity      string  `json:"region_city"`
	RegionState     string  `json:"region_state"`
	Facebook        string  `json:"facebook"`
	Instagram       string  `json:"instagram"`
	LinkedIn        string  `json:"linkedin"`
	XTwitter        string  `json:"x_twitter"`
	MapLat          float64 `json:"map_lat"`
	MapLon          float64 `json:"map_lon"`
	MapZoom         int     `json:"map_zoom"`
	MapEmbedLink    string  `json:"map_embed_link"`
	LogoURL         string  `json:"logo_url"`
	HeroImageURL    string  `json:"hero_image_url"`
	ContactFormURL  string  `json:"contact_form_url"`
	FNGFormURL      string  `json:"fng_form_url"`

	// Placeholder marks a record synthesized because none was configured.
	// The first admin write clears it.
	Placeholder bool `json:"placeholder"`
}

// RegionUpdate is a field-by-field merge onto the stored Region.
// Nil fields are left untouched.
type RegionUpdate struct {
	RegionName      *string
	MetaDescription *string
	HeroTitle       *string
	HeroSubtitle    *string
	RegionCity      *string
	RegionState     *string
	Facebook        *string
	Instagram       *string
	LinkedIn        *string
	XTwitter        *string
	MapLat          *float64
	MapLon          *float64
	MapZoom         *int
	MapEmbedLink    *string
	LogoURL         *string
	HeroImageURL    *string
	ContactFormURL  *string
	FNGFormURL      *string
}

// Apply merges the set fields onto r. Any explicit write makes the record a
// real configuration, so Placeholder is cleared.
func (u RegionUpdate) Apply(r *Region) {
	setString(&r.RegionName, u.RegionName)
	setString(&r.MetaDescription, u.MetaDescription)
	setString(&r.HeroTitle, u.HeroTitle)
	setString(&r.HeroSubtitle, u.HeroSubtitle)
	setString(&r.RegionCity, u.RegionCity)
	setString(&r.RegionState, u.RegionState)
	setString(&r.Facebook, u.Facebook)
	setString(&r.Instagram, u.Instagram)
	setString(&r.LinkedIn, u.LinkedIn)
	setString(&r.XTwitter, u.XTwitter)
	if u.MapLat != nil {
		r.MapLat = *u.MapLat
	}
	if u.MapLon != nil {
		r.MapLon = *u.MapLon
	}
	if u.MapZoom != nil {
		r.MapZoom = *u.MapZoom
	}
	setString(&r.MapEmbedLink, u.MapEmbedLink)
	setString(&r.LogoURL, u.LogoURL)
	setString(&r.HeroImageURL, u.HeroImageURL)
	setString(&r.ContactFormURL, u.ContactFormURL)
	setString(&r.FNGFormURL, u.FNGFormURL)
	r.Placeholder = false
}

// DefaultRegion is the record synthesized when nothing is configured.
func DefaultRegion() Region {
	return Region{
		RegionName:      "Your Region",
		MetaDescription: "Free, peer-led workouts for men. Find a workout near you.",
		HeroTitle:       "Your Region",
		HeroSubtitle:    "Free peer-led workouts. Open to all men. Rain or shine.",
		MapZoom:         10,
		Placeholder:     true,
	}
}
