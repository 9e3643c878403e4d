package entity

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleDecorator UserRole = "decorator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
