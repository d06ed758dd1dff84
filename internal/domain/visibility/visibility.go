// Package visibility concentra las reglas puras de visibilidad y permisos por
// rol y sucursal. No tiene efectos secundarios: un registro fuera de alcance
// simplemente no aparece en el conjunto visible. Las operaciones de gestión sí
// devuelven una denegación tipada en la capa de servicio (domain.ErrForbidden).
package visibility

import "github.com/sm-global/express-api/internal/domain/entity"

// CanSeeParcel decide si un actor (rol, sucursal) puede ver un paquete.
// SUPER_ADMIN ve todo; ADMIN y OPERATOR ven los paquetes donde su sucursal es
// origen O destino (filtro bidireccional: una oficina ve lo que sale y lo que llega).
func CanSeeParcel(role, branch string, p *entity.Parcel) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	return p.Origin == branch || p.Destination == branch
}

// FilterParcels devuelve el subconjunto de paquetes visibles para el actor.
func FilterParcels(role, branch string, parcels []*entity.Parcel) []*entity.Parcel {
	if role == entity.RoleSuperAdmin {
		return parcels
	}
	out := make([]*entity.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if CanSeeParcel(role, branch, p) {
			out = append(out, p)
		}
	}
	return out
}

// InRevenueScope decide si el costo de un paquete cuenta para la recaudación del actor.
// La recaudación se atribuye solo a la sucursal de ORIGEN para evitar contarla dos
// veces en destino; SUPER_ADMIN agrega sobre todos los paquetes.
func InRevenueScope(role, branch string, p *entity.Parcel) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	return p.Origin == branch
}

// CanViewRevenue indica si el rol puede ver cifras de recaudación.
// OPERATOR no tiene acceso a recaudación (autorización, no visibilidad).
func CanViewRevenue(role string) bool {
	return role == entity.RoleSuperAdmin || role == entity.RoleAdmin
}

// CanSeeUser decide si un actor puede ver un registro de usuario.
// SUPER_ADMIN ve todos; ADMIN solo los de su propia sucursal; OPERATOR ninguno.
func CanSeeUser(role, branch string, u *entity.User) bool {
	switch role {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleAdmin:
		return u.Branch == branch
	default:
		return false
	}
}

// FilterUsers devuelve el subconjunto de usuarios visibles para el actor.
func FilterUsers(role, branch string, users []*entity.User) []*entity.User {
	out := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if CanSeeUser(role, branch, u) {
			out = append(out, u)
		}
	}
	return out
}

// CanManageParcels indica si el rol puede registrar paquetes.
// El operador solo actualiza estados, no registra envíos.
func CanManageParcels(role string) bool {
	return role == entity.RoleSuperAdmin || role == entity.RoleAdmin
}

// CanManageCustomers indica si el rol puede crear, editar o eliminar clientes.
func CanManageCustomers(role string) bool {
	return role == entity.RoleSuperAdmin || role == entity.RoleAdmin
}

// CanManageUsers indica si el rol puede administrar usuarios.
func CanManageUsers(role string) bool {
	return role == entity.RoleSuperAdmin || role == entity.RoleAdmin
}

// CanSeeNotification decide si una notificación es visible para el actor.
// Sin sucursal destino la notificación es global (solo SUPER_ADMIN);
// con destino la ve la sucursal indicada además del SUPER_ADMIN.
func CanSeeNotification(role, branch string, n *entity.AppNotification) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	return n.TargetBranch != "" && n.TargetBranch == branch
}

// FilterNotifications devuelve las notificaciones visibles para el actor.
func FilterNotifications(role, branch string, list []*entity.AppNotification) []*entity.AppNotification {
	if role == entity.RoleSuperAdmin {
		return list
	}
	out := make([]*entity.AppNotification, 0, len(list))
	for _, n := range list {
		if CanSeeNotification(role, branch, n) {
			out = append(out, n)
		}
	}
	return out
}
