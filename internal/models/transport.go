package models

import "gorm.io/datatypes"

// TransportModel is a vehicle offered for transfers and tours.
type TransportModel struct {
	Base
	Name           string                      `json:"name"            gorm:"not null"`
	VehicleType    string                      `json:"vehicle_type"    gorm:"index"`
	Capacity       int                         `json:"capacity"`
	PricePerDay    float64                     `json:"price_per_day"`
	PickupLocation string                      `json:"pickup_location"`
	Description    string                      `json:"description"     gorm:"type:text"`
	Images         datatypes.JSONSlice[string] `json:"images"`
	IsActive       bool                        `json:"is_active"`
}

func (TransportModel) TableName() string { return "transports" }
