package entity

import "time"

// User representa un usuario del sistema. Role es el rol canónico del usuario:
// si la plataforma origen asigna varios, aquí se persiste solo el primero
// (los roles co-asignados se ignoran para precios y visibilidad).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
