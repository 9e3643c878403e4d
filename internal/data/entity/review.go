package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	ServiceID uuid.UUID `db:"service_id"`
	UserEmail string    `db:"user_email"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
}
