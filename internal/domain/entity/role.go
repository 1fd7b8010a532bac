package entity

// Role identifica la clasificación del visitante usada para precios y visibilidad.
// Es un string opaco: el conjunto válido sale de la configuración más los roles
// asignados a usuarios. Los valores obsoletos guardados en metadatos son inertes.
type Role = string

// Roles con significado propio en el sistema.
const (
	// RoleGuest rol sintético para visitantes no autenticados.
	RoleGuest Role = "guest"
	// RoleAdmin rol con capacidad de gestión del catálogo.
	RoleAdmin Role = "admin"
)

// RolesContain verifica pertenencia exacta de un rol en una lista.
// Comparación exacta, nunca por substring: un rol cuyo nombre sea prefijo de
// otro ("vip" vs "vip_plus") no debe producir falsos positivos.
func RolesContain(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// FirstRole devuelve el rol canónico de una lista de roles asignados:
// el primero. Si la lista está vacía, devuelve RoleGuest.
func FirstRole(roles []Role) Role {
	if len(roles) == 0 {
		return RoleGuest
	}
	return roles[0]
}
