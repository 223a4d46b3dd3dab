package models

import "time"

// User is owned by the identity directory; the ledger only references ID.
type User struct {
	ID        string    `db:"id" json:"id"`
	UserName  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
