package entity

// Operator usuario que opera la bodega. Se declara por configuración, no en BD.
type Operator struct {
	Username     string
	Role         string // admin, bodeguero, lector
	PasswordHash string // bcrypt
}
