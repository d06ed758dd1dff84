// Package sms contiene el adaptador de mensajería de texto sobre la API REST de Twilio.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sm-global/express-api/internal/application/ports"
)

var _ ports.SMSGateway = (*TwilioGateway)(nil)

const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// TwilioGateway implementa SMSGateway llamando a la API REST de Twilio.
// Usa únicamente la librería estándar de Go (net/http) para no añadir dependencias externas.
type TwilioGateway struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
}

// NewTwilioGateway construye el adaptador con las credenciales de la cuenta.
func NewTwilioGateway(accountSID, authToken, from string) *TwilioGateway {
	return &TwilioGateway{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured indica si las credenciales mínimas están presentes.
func (g *TwilioGateway) Configured() bool {
	return g.accountSID != "" && g.authToken != "" && g.from != ""
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Send envía el SMS y devuelve el SID asignado por Twilio.
func (g *TwilioGateway) Send(ctx context.Context, to, message string) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("SMS: configuración de Twilio incompleta")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", g.from)
	form.Set("Body", message)

	endpoint := fmt.Sprintf(twilioMessagesURL, g.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("SMS: crear HTTP request: %w", err)
	}
	req.SetBasicAuth(g.accountSID, g.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("SMS: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("SMS: leer respuesta: %w", err)
	}

	var msg twilioMessageResponse
	if err := json.Unmarshal(rawBody, &msg); err != nil {
		return "", fmt.Errorf("SMS: deserializar respuesta Twilio: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg.Message != "" {
			return "", fmt.Errorf("SMS: Twilio error %d: %s", msg.Code, msg.Message)
		}
		return "", fmt.Errorf("SMS: Twilio HTTP %d", resp.StatusCode)
	}
	return msg.SID, nil
}
