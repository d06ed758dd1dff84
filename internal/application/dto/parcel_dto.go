package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// CreateParcelRequest entrada para registrar un envío en la sucursal del actor.
type CreateParcelRequest struct {
	SenderID        string          `json:"senderId" validate:"required"`
	ReceiverName    string          `json:"receiverName" validate:"required"`
	ReceiverPhone   string          `json:"receiverPhone" validate:"required"`
	ReceiverAddress string          `json:"receiverAddress"`
	Weight          float64         `json:"weight" validate:"required,gt=0"`
	Type            string          `json:"type"`
	Cost            decimal.Decimal `json:"cost"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	Destination     string          `json:"destination" validate:"required"`
}

// UpdateStatusRequest entrada para avanzar el estado de un paquete.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SuggestPriceRequest entrada para la sugerencia de precio por IA.
type SuggestPriceRequest struct {
	Weight      float64 `json:"weight" validate:"required,gt=0"`
	Origin      string  `json:"origin" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	Type        string  `json:"type"`
}

// SuggestPriceResponse precio sugerido en FCFA.
type SuggestPriceResponse struct {
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

// TrackResponse vista pública de seguimiento: sin datos del remitente ni montos.
type TrackResponse struct {
	TrackingCode string               `json:"trackingCode"`
	Status       string               `json:"status"`
	Origin       string               `json:"origin"`
	Destination  string               `json:"destination"`
	ReceiverName string               `json:"receiverName"`
	History      []entity.StatusEvent `json:"history"`
}

// ToTrackResponse proyecta el paquete a su vista pública.
func ToTrackResponse(p *entity.Parcel) TrackResponse {
	return TrackResponse{
		TrackingCode: p.TrackingCode,
		Status:       p.Status,
		Origin:       p.Origin,
		Destination:  p.Destination,
		ReceiverName: p.ReceiverName,
		History:      p.History,
	}
}
