// Package ai contiene los adaptadores de modelos de lenguaje.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sm-global/express-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// defaultPrice es el precio de respaldo en FCFA cuando el modelo no está
	// disponible o devuelve algo que no es un número.
	defaultPrice = 5000

	noAPIKeyReport = "Sistema de IA no configurado. Configure su API_KEY para obtener reportes."
)

// GeminiService adaptador que implementa LLMService llamando a la API REST de Google Gemini.
// Usa únicamente la librería estándar de Go (net/http) para no añadir dependencias externas.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// Con apiKey vacío las operaciones devuelven valores de respaldo en lugar de fallar.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// SuggestPrice pide al modelo un precio estimado en FCFA para la ruta dada.
// Cualquier fallo degrada al precio de respaldo: la sugerencia nunca bloquea
// el registro de un paquete.
func (s *GeminiService) SuggestPrice(ctx context.Context, weight float64, origin, destination, parcelType string) (int64, error) {
	if s.apiKey == "" {
		return defaultPrice, nil
	}

	prompt := fmt.Sprintf(
		"Calcula un precio estimado sugerido en FCFA (Francos CFA) para un envío de %.2fkg desde %s hasta %s (paquete tipo: %s) dentro de Guinea Ecuatorial. "+
			"Ten en cuenta que los envíos entre Bata y Malabo suelen incluir transporte aéreo o marítimo. Solo devuelve el número sugerido sin texto adicional.",
		weight, origin, destination, parcelType,
	)

	text, err := s.generate(ctx, prompt, nil)
	if err != nil {
		return defaultPrice, nil
	}
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(text), "")
	price, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || price <= 0 {
		return defaultPrice, nil
	}
	return price, nil
}

// LogisticsReport genera el resumen ejecutivo del panel a partir de las estadísticas.
func (s *GeminiService) LogisticsReport(ctx context.Context, stats any) (string, error) {
	if s.apiKey == "" {
		return noAPIKeyReport, nil
	}

	rawStats, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("AI: serializar estadísticas: %w", err)
	}
	prompt := fmt.Sprintf(
		"Analiza los siguientes datos de una empresa de paquetería en Guinea Ecuatorial: %s. "+
			"Proporciona un resumen ejecutivo breve (máximo 150 palabras) sobre el rendimiento actual y una recomendación estratégica para mejorar la eficiencia logística local.",
		rawStats,
	)

	return s.generate(ctx, prompt, &genConfig{Temperature: 0.7})
}

// generate envía el prompt al endpoint generateContent y devuelve el texto del
// primer candidato.
func (s *GeminiService) generate(ctx context.Context, prompt string, cfg *genConfig) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: cfg,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text), nil
}
