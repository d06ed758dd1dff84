package ports

import "context"

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, OpenAI, Ollama, mock) debe implementar esta interfaz.
// La aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// SuggestPrice estima un precio en FCFA para un envío según peso, ruta y tipo
	// de paquete. El contexto debe llevar un timeout para evitar bloqueos en
	// llamadas externas.
	SuggestPrice(ctx context.Context, weight float64, origin, destination, parcelType string) (int64, error)

	// LogisticsReport genera un resumen ejecutivo en español a partir de las
	// estadísticas operativas del panel.
	LogisticsReport(ctx context.Context, stats any) (string, error)
}
