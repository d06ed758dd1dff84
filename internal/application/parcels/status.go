package parcels

import (
	"context"
	"fmt"
	"time"

	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
)

// UpdateStatus avanza el estado de un paquete y anota el evento en el
// historial. Las transiciones son libres: cualquier estado puede saltar a
// cualquier otro, y repetir un estado vuelve a anotar el evento.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor entity.Actor, parcelID, newStatus string) (*entity.Parcel, error) {
	if !entity.IsValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	p, err := uc.parcels.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	p.Status = newStatus
	p.History = append(p.History, entity.StatusEvent{
		Status:    newStatus,
		Date:      time.Now(),
		Note:      fmt.Sprintf("Estado actualizado en %s por %s", actor.Branch, actor.Name),
		UpdatedBy: actor.Name,
	})

	if err := uc.parcels.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.notifyStatusChange(ctx, actor, p, newStatus)
	uc.trigger()
	return p, nil
}

// notifyStatusChange dispara los efectos laterales de cada estado.
// RECEIVED no notifica: el registro ya emitió la suya.
func (uc *UseCase) notifyStatusChange(ctx context.Context, actor entity.Actor, p *entity.Parcel, newStatus string) {
	switch newStatus {
	case entity.StatusInTransit:
		uc.emit(ctx, "Paquete en Camino",
			fmt.Sprintf("El paquete %s ha sido despachado desde %s hacia %s.", p.TrackingCode, actor.Branch, p.Destination),
			entity.NotifWarning, p.Destination, p)

	case entity.StatusInWarehouse:
		if p.ReceiverPhone != "" {
			go uc.sendArrivalSMS(actor, p)
		}
		uc.emit(ctx, "Paquete en Almacén",
			fmt.Sprintf("El paquete %s ha llegado al almacén de %s.", p.TrackingCode, actor.Branch),
			entity.NotifInfo, actor.Branch, p)

	case entity.StatusDelivered:
		uc.emit(ctx, "Paquete Entregado",
			fmt.Sprintf("El paquete %s enviado desde %s ha sido entregado en %s.", p.TrackingCode, p.Origin, actor.Branch),
			entity.NotifSuccess, p.Origin, p)
	}
}

// sendArrivalSMS avisa al receptor que su paquete está en almacén. Corre en su
// propia goroutine: un proveedor caído jamás bloquea el cambio de estado.
func (uc *UseCase) sendArrivalSMS(actor entity.Actor, p *entity.Parcel) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	msg := fmt.Sprintf(
		"SM Global Express: Hola %s, su paquete %s ya está disponible en el almacén de %s para su recogida.",
		p.ReceiverName, p.TrackingCode, actor.Branch,
	)
	sid, err := uc.smsGw.Send(ctx, p.ReceiverPhone, msg)
	if err != nil {
		uc.log.Warn().Err(err).Str("paquete", p.ID).Str("telefono", p.ReceiverPhone).Msg("error al disparar SMS")
		return
	}
	uc.log.Info().Str("paquete", p.ID).Str("sid", sid).Msg("SMS de llegada enviado")
}
