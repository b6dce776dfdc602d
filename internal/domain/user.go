package domain

// User is a registered player. Email is the identity key handed to the
// engine by the transport layer after authentication. Silver is the only
// currency; it never goes negative.
type User struct {
	Email        string `json:"email" db:"email"`
	Username     string `json:"username" db:"username"`
	ProfessionID int    `json:"profession_id" db:"profession_id"`
	Silver       int64  `json:"silver" db:"silver"`
}
