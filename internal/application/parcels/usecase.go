// Package parcels implementa el registro de envíos y su flujo de estados.
package parcels

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/ports"
	"github.com/sm-global/express-api/internal/application/usecase"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/internal/domain/visibility"
	"github.com/sm-global/express-api/pkg/logger"
)

// UseCase casos de uso de paquetes: registro, listado, seguimiento y estados.
type UseCase struct {
	parcels   repository.ParcelStore
	customers repository.CustomerStore
	notifs    *usecase.NotificationUseCase
	smsGw     ports.SMSGateway
	llm       ports.LLMService
	log       *logger.Logger
	trigger   func()
}

// NewUseCase construye el caso de uso. trigger se dispara tras cada mutación
// local para adelantar el siguiente push de sincronización; puede ser nil.
func NewUseCase(
	parcels repository.ParcelStore,
	customers repository.CustomerStore,
	notifs *usecase.NotificationUseCase,
	smsGw ports.SMSGateway,
	llm ports.LLMService,
	log *logger.Logger,
	trigger func(),
) *UseCase {
	if trigger == nil {
		trigger = func() {}
	}
	return &UseCase{
		parcels:   parcels,
		customers: customers,
		notifs:    notifs,
		smsGw:     smsGw,
		llm:       llm,
		log:       log,
		trigger:   trigger,
	}
}

// newTrackingCode genera una guía legible: SM-<año>-<4 dígitos>.
func newTrackingCode(now time.Time) string {
	return fmt.Sprintf("SM-%d-%d", now.Year(), 1000+rand.Intn(9000))
}

// Create registra un envío en la sucursal del actor. Solo ADMIN y SUPER_ADMIN
// registran paquetes; el origen siempre es la sucursal del actor.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateParcelRequest) (*entity.Parcel, error) {
	if !visibility.CanManageParcels(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if in.Weight <= 0 || in.Cost.IsNegative() || strings.TrimSpace(in.ReceiverName) == "" ||
		strings.TrimSpace(in.ReceiverPhone) == "" || strings.TrimSpace(in.Destination) == "" {
		return nil, domain.ErrInvalidInput
	}

	sender, err := uc.customers.Get(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domain.ErrSenderNotFound
	}

	now := time.Now()
	p := &entity.Parcel{
		ID:              uuid.New().String(),
		TrackingCode:    newTrackingCode(now),
		SenderID:        in.SenderID,
		ReceiverName:    in.ReceiverName,
		ReceiverPhone:   in.ReceiverPhone,
		ReceiverAddress: in.ReceiverAddress,
		Weight:          in.Weight,
		Type:            in.Type,
		Cost:            in.Cost,
		Status:          entity.StatusReceived,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   in.PaymentStatus,
		Origin:          actor.Branch,
		Destination:     in.Destination,
		CreatedAt:       now,
		Branch:          actor.Branch,
		CreatedByID:     actor.ID,
		CreatedByName:   actor.Name,
		History: []entity.StatusEvent{
			{
				Status:    entity.StatusReceived,
				Date:      now,
				Note:      fmt.Sprintf("Registrado en sucursal %s", actor.Branch),
				UpdatedBy: actor.Name,
			},
		},
	}

	if err := uc.parcels.Add(ctx, p); err != nil {
		return nil, err
	}

	uc.emit(ctx, "Nuevo Envío Entrante",
		fmt.Sprintf("Nuevo envío %s registrado desde %s con destino a %s.", p.TrackingCode, p.Origin, p.Destination),
		entity.NotifInfo, p.Destination, p)

	uc.trigger()
	return p, nil
}

// List devuelve los paquetes visibles para el actor, opcionalmente filtrados
// por guía o nombre del receptor.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, search string) ([]*entity.Parcel, error) {
	all, err := uc.parcels.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := visibility.FilterParcels(actor.Role, actor.Branch, all)
	if search == "" {
		return visible, nil
	}

	needle := strings.ToLower(search)
	out := make([]*entity.Parcel, 0, len(visible))
	for _, p := range visible {
		if strings.Contains(strings.ToLower(p.TrackingCode), needle) ||
			strings.Contains(strings.ToLower(p.ReceiverName), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get devuelve un paquete por id. Un paquete fuera del alcance del actor no
// existe para él.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Parcel, error) {
	p, err := uc.parcels.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !visibility.CanSeeParcel(actor.Role, actor.Branch, p) {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Track es el seguimiento público por guía, sin autenticación.
func (uc *UseCase) Track(ctx context.Context, code string) (*dto.TrackResponse, error) {
	p, err := uc.parcels.FindByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToTrackResponse(p)
	return &resp, nil
}

// SuggestPrice pide al modelo un precio estimado en FCFA para la ruta dada.
func (uc *UseCase) SuggestPrice(ctx context.Context, in dto.SuggestPriceRequest) (*dto.SuggestPriceResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	price, err := uc.llm.SuggestPrice(ctx, in.Weight, in.Origin, in.Destination, in.Type)
	if err != nil {
		return nil, err
	}
	return &dto.SuggestPriceResponse{Price: price, Currency: "FCFA"}, nil
}

// emit registra la notificación; un fallo del centro de notificaciones nunca
// tumba la operación principal.
func (uc *UseCase) emit(ctx context.Context, title, message, typ, targetBranch string, p *entity.Parcel) {
	if err := uc.notifs.Emit(ctx, title, message, typ, targetBranch, p.ID, p.TrackingCode); err != nil {
		uc.log.Warn().Err(err).Str("paquete", p.ID).Msg("no se pudo registrar la notificación")
	}
}
