package model

import (
	"time"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin" // assignable out-of-band only, never via register
)

type User struct {
	ID                  string     `bson:"_id" json:"_id"`
	Name                string     `bson:"name" json:"name" validate:"required"`
	Email               string     `bson:"email" json:"email" validate:"required,email"`
	Role                string     `bson:"role" json:"role" validate:"required,oneof=user publisher admin"`
	Password            string     `bson:"password" json:"-" validate:"required,min=6"`
	ResetPasswordToken  string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
}
