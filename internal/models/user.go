package models

import "time"

type User struct {
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Institution  *string   `json:"institution,omitempty" db:"institution"`
	RequestCount int       `json:"request_count" db:"request_count"`
	LastReset    time.Time `json:"last_reset" db:"last_reset"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RequestsInPeriod returns the request counter as seen from the given billing
// period. A counter persisted for an earlier month counts as zero.
func (u *User) RequestsInPeriod(period time.Time) int {
	if u.LastReset.Year() == period.Year() && u.LastReset.Month() == period.Month() {
		return u.RequestCount
	}
	return 0
}
