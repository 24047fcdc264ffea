package config

import (
	"fmt"
	"net/url"
)

// DSN builds a postgres connection URL from the database settings.
// User and password are escaped so credentials with reserved characters survive.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}

	q := u.Query()
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// RedactedDSN is DSN with the password masked, safe for logs.
func (d DatabaseConfig) RedactedDSN() string {
	if d.Password == "" {
		return d.DSN()
	}
	masked := d
	masked.Password = "xxxxx"
	return masked.DSN()
}
