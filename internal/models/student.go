package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Student struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RegisterNumber string             `json:"registerNumber" bson:"registerNumber" validate:"required,min=1,max=50"`
	Name           string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	ClassName      string             `json:"className" bson:"className" validate:"required,min=1,max=50"`
	Password       string             `json:"-" bson:"password" validate:"required,min=6"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

type StudentRequest struct {
	RegisterNumber string `json:"registerNumber" validate:"required,min=1,max=50"`
	Name           string `json:"name" validate:"required,min=2,max=100"`
	ClassName      string `json:"className" validate:"required,min=1,max=50"`
	Password       string `json:"password" validate:"required,min=6"`
}
