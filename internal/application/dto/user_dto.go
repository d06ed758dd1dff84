package dto

import "github.com/sm-global/express-api/internal/domain/entity"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario sin contraseña.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea al sincronizar).
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
	Role     string `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN OPERATOR"`
	Branch   string `json:"branch" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Branch string `json:"branch"`
}

// ToUserResponse convierte la entidad en su representación pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Branch: u.Branch}
}

// ToUserResponses convierte una lista de usuarios.
func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
