package model

import (
	"time"
)

const DefaultPhoto = "no-photo.jpg"

var validCareers = map[string]struct{}{
	"Web Development":    {},
	"Mobile Development": {},
	"UI/UX":              {},
	"Data Science":       {},
	"Business":           {},
	"Other":              {},
}

// Location is a GeoJSON point plus the formatted address components the
// geocoder resolved. The raw input address is never stored.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

type Bootcamp struct {
	ID            string    `bson:"_id" json:"_id"`
	Name          string    `bson:"name" json:"name" validate:"required,min=5,max=50"`
	Slug          string    `bson:"slug" json:"slug"`
	Description   string    `bson:"description" json:"description" validate:"required,min=5,max=500"`
	Website       string    `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Location      *Location `bson:"location,omitempty" json:"location,omitempty"`
	Careers       []string  `bson:"careers" json:"careers" validate:"required,min=1,dive,career"`
	AverageRating *float64  `bson:"averageRating,omitempty" json:"averageRating,omitempty" validate:"omitempty,gte=1,lte=10"`
	AverageCost   *int      `bson:"averageCost,omitempty" json:"averageCost,omitempty"`
	Photo         string    `bson:"photo" json:"photo"`
	Housing       bool      `bson:"housing" json:"housing"`
	JobAssistance bool      `bson:"jobAssistance" json:"jobAssistance"`
	JobGuarantee  bool      `bson:"jobGuarantee" json:"jobGuarantee"`
	AcceptGI      bool      `bson:"acceptGi" json:"acceptGi"`
	UserID        string    `bson:"user" json:"user"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
