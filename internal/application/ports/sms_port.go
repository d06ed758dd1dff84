package ports

import "context"

// SMSGateway define el puerto de salida para el envío de mensajes de texto.
// Devuelve el identificador del mensaje asignado por el proveedor.
type SMSGateway interface {
	Send(ctx context.Context, to, message string) (string, error)
}
