package sync

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// Datos semilla: la primera ejecución sin Record Store accesible y sin caché
// arranca con estas cuentas y registros de muestra.

func seedUsers() []*entity.User {
	return []*entity.User{
		{ID: "u-1", Name: "Super Admin", Email: "admin@sm-global.com", Role: entity.RoleSuperAdmin, PasswordHash: "123", Branch: entity.BranchSedeCentral},
		{ID: "u-2", Name: "Admin Malabo", Email: "malabo@sm-global.com", Role: entity.RoleAdmin, PasswordHash: "123", Branch: "Malabo"},
		{ID: "u-3", Name: "Admin Bata", Email: "bata@sm-global.com", Role: entity.RoleAdmin, PasswordHash: "123", Branch: "Bata"},
		{ID: "u-4", Name: "Operador Logístico", Email: "operador@sm-global.com", Role: entity.RoleOperator, PasswordHash: "123", Branch: "Malabo"},
	}
}

func seedCustomers() []*entity.Customer {
	return []*entity.Customer{
		{ID: "1", FullName: "Juan Obiang", Phone: "+240 222 000 111", Address: "Bata, Plaza de la Libertad", DNI: "1234567-A"},
		{ID: "2", FullName: "Maria Nchama", Phone: "+240 555 123 456", Address: "Malabo, Calle Kenia", DNI: "9876543-B"},
	}
}

func seedParcels() []*entity.Parcel {
	now := time.Now()
	return []*entity.Parcel{
		{
			ID:              "p1",
			TrackingCode:    "GE-2023-A001",
			SenderID:        "1",
			ReceiverName:    "Carlos Mba",
			ReceiverPhone:   "+240 222 999 888",
			ReceiverAddress: "Malabo, Paraíso",
			Weight:          2.5,
			Type:            "Caja Mediana (2-10kg)",
			Cost:            decimal.NewFromInt(5000),
			Status:          entity.StatusReceived,
			PaymentMethod:   entity.PaymentCash,
			PaymentStatus:   entity.PaymentPaid,
			Origin:          "Bata",
			Destination:     "Malabo",
			CreatedAt:       now,
			Branch:          "Bata",
			CreatedByID:     "u-1",
			CreatedByName:   "Super Admin",
			History: []entity.StatusEvent{
				{Status: entity.StatusReceived, Date: now, Note: "Paquete recibido en oficina central", UpdatedBy: "Super Admin"},
			},
		},
	}
}
