package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/internal/domain/visibility"
)

// UserUseCase casos de uso de cuentas de usuario.
type UserUseCase struct {
	users   repository.UserStore
	trigger func()
}

// NewUserUseCase construye el caso de uso. trigger puede ser nil.
func NewUserUseCase(users repository.UserStore, trigger func()) *UserUseCase {
	if trigger == nil {
		trigger = func() {}
	}
	return &UserUseCase{users: users, trigger: trigger}
}

// List devuelve los usuarios visibles: SUPER_ADMIN todos, ADMIN su sucursal.
// OPERATOR no tiene acceso a cuentas.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.UserResponse, error) {
	if !visibility.CanManageUsers(actor.Role) {
		return nil, domain.ErrForbidden
	}
	all, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(visibility.FilterUsers(actor.Role, actor.Branch, all)), nil
}

// Create registra una cuenta nueva. Solo SUPER_ADMIN puede otorgar SUPER_ADMIN.
// La contraseña entra en texto plano al caché; el push la protege con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !visibility.CanManageUsers(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if in.Role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	switch in.Role {
	case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleOperator:
	default:
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || strings.TrimSpace(in.Branch) == "" {
		return nil, domain.ErrInvalidInput
	}

	u := &entity.User{
		ID:           "u-" + uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: in.Password,
		Branch:       in.Branch,
	}
	if err := uc.users.Add(ctx, u); err != nil {
		return nil, err
	}
	uc.trigger()
	resp := dto.ToUserResponse(u)
	return &resp, nil
}

// Delete elimina una cuenta del caché local. Las cuentas SUPER_ADMIN son
// inmutables y la sincronización nunca propaga eliminaciones.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !visibility.CanManageUsers(actor.Role) {
		return domain.ErrForbidden
	}
	target, err := uc.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if target.Role == entity.RoleSuperAdmin {
		return domain.ErrSuperAdminInmutable
	}
	if !visibility.CanSeeUser(actor.Role, actor.Branch, target) {
		return domain.ErrUserNotFound
	}
	if err := uc.users.Remove(ctx, id); err != nil {
		return err
	}
	uc.trigger()
	return nil
}
