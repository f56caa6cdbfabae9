package models

// UserKey is the storage key of the signed-in user record.
const UserKey = "user"

// User is the signed-in account. It is created on login or signup, replaced
// on every login and deleted on logout.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
