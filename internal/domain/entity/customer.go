package entity

// Customer representa un remitente registrado (solo clientes registrados pueden enviar).
// DNI es el documento de identidad, único en el sistema.
type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	DNI      string `json:"dni"`
	Email    string `json:"email,omitempty"`
}
