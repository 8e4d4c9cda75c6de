package model

import (
	"time"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type Course struct {
	ID                    string    `bson:"_id" json:"_id"`
	Title                 string    `bson:"title" json:"title" validate:"required"`
	Description           string    `bson:"description" json:"description" validate:"required"`
	Weeks                 string    `bson:"weeks" json:"weeks" validate:"required"`
	Tuition               float64   `bson:"tuition" json:"tuition" validate:"required"`
	MinimumSkill          string    `bson:"minimumSkill" json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipsAvailable bool      `bson:"scholarshipsAvailable" json:"scholarshipsAvailable"`
	BootcampID            string    `bson:"bootcamp" json:"bootcamp" validate:"required"`
	UserID                string    `bson:"user" json:"user" validate:"required"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BootcampSummary is the slice of the parent bootcamp embedded on course
// reads.
type BootcampSummary struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CourseWithBootcamp replaces the course's raw bootcamp id with the parent
// summary; the outer field shadows the embedded id on serialization.
type CourseWithBootcamp struct {
	Course
	Bootcamp *BootcampSummary `json:"bootcamp"`
}
