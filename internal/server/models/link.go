package models

import "database/sql"

// OneTimeLink represents one user's right to redeem a one-time access link
// to the protected video. AccessToken is NULL until the link is issued and
// is set exactly once; there is no reset path.
type OneTimeLink struct {
	ID          string
	Email       string
	AccessToken sql.NullString
	ClickCount  int64
}

// Issued reports whether an access token has already been assigned.
func (l *OneTimeLink) Issued() bool {
	return l.AccessToken.Valid && l.AccessToken.String != ""
}
