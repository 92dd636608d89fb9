// internal/domain/location.go
package domain

// Location is a named workout site (an AO). Name is unique.
type Location struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	MapLink      string `json:"mapLink"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	Q            string `json:"q"` // Site Q
	EmbedMapLink string `json:"embedMapLink"`
	ImageURL     string `json:"imageUrl"`
	PaxImageURL  string `json:"paxImageUrl"`
}

// LocationUpdate carries a partial change to a Location. Nil fields are
// left as stored.
type LocationUpdate struct {
	Name         *string
	MapLink      *string
	Address      *string
	Description  *string
	Q            *string
	EmbedMapLink *string
	ImageURL     *string
	PaxImageURL  *string
}

// Apply copies the set fields onto l.
func (u LocationUpdate) Apply(l *Location) {
	setString(&l.Name, u.Name)
	setString(&l.MapLink, u.MapLink)
	setString(&l.Address, u.Address)
	setString(&l.Description, u.Description)
	setString(&l.Q, u.Q)
	setString(&l.EmbedMapLink, u.EmbedMapLink)
	setString(&l.ImageURL, u.ImageURL)
	setString(&l.PaxImageURL, u.PaxImageURL)
}
