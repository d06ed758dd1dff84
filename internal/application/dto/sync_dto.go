package dto

import "github.com/sm-global/express-api/internal/domain/entity"

// DataResponse es el snapshot visible para el actor, servido en GET /api/data.
type DataResponse struct {
	Users         []UserResponse            `json:"users"`
	Customers     []*entity.Customer        `json:"customers"`
	Parcels       []*entity.Parcel          `json:"parcels"`
	Notifications []*entity.AppNotification `json:"notifications"`
}

// SMSRequest entrada del relé de SMS.
type SMSRequest struct {
	To      string `json:"to" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SMSResponse confirmación con el SID del proveedor.
type SMSResponse struct {
	Success bool   `json:"success"`
	SID     string `json:"sid"`
}
