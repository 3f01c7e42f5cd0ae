package models

import "time"

// Availability states for a property.
const (
	PropertyAvailable = "available"
	PropertyOccupied  = "occupied"
)

// Property represents a room/PG listing.
type Property struct {
	ID           string    `bson:"id" json:"id"`
	OwnerID      string    `bson:"owner_id" json:"owner_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	City         string    `bson:"city" json:"city"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	Rent         float64   `bson:"rent" json:"rent"` // monthly rent per room
	Availability string    `bson:"availability" json:"availability"`
	Photos       []string  `bson:"photos,omitempty" json:"photos,omitempty"` // storage public IDs
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAvailable reports whether the property can accept new bookings.
func (p *Property) IsAvailable() bool {
	return p.Availability == PropertyAvailable
}
