package dto

// CustomerRequest entrada para crear o actualizar un cliente.
type CustomerRequest struct {
	FullName string `json:"fullName" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address"`
	DNI      string `json:"dni"`
	Email    string `json:"email" validate:"omitempty,email"`
}
