package domain

import (
	"context"
	"errors"

	"github.com/drivia/drivia/pkg/db/pagination"
)

type ListVehicleRequest struct {
	PageToken    string
	PageSize     int32
	Status       string
	Transmission string
}

type ListVehicleFilter struct {
	Status       string
	Transmission string
}

type ListVehicleResponse struct {
	pagination.PageInfo
	Vehicles []Vehicle `json:"vehicles"`
}

type CreateVehicleRequest struct {
	Make         string
	Model        string
	Plate        string
	Year         int
	Transmission string
}

type UpdateVehicleRequest struct {
	ID           string
	Make         *string
	Model        *string
	Plate        *string
	Year         *int
	Transmission *string
	Status       *string
}

type GetVehicleRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateVehicleRequest) (Vehicle, error)
	List(context.Context, ListVehicleRequest) (ListVehicleResponse, error)
	GetByID(context.Context, GetVehicleRequest) (Vehicle, error)
	Update(context.Context, UpdateVehicleRequest) (Vehicle, error)
	Delete(context.Context, GetVehicleRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidVehicle      = errors.New("invalid_vehicle")
	ErrInvalidPlate        = errors.New("invalid_plate")
	ErrDuplicatePlate      = errors.New("duplicate_plate")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("vehicle_not_found")
)
