package server

import (
	"crypto/subtle"
	"fmt"
	"os"
)

const (
	EnvAdmin         = "PYCM_API_ADMIN"
	EnvAdminPassword = "PYCM_API_ADMIN_PASSWORD"
)

// AdminCredential is the static credential pair of the admin endpoints.
//
// It comes from the process environment, never from the user table.
type AdminCredential struct {
	Username string
	Password string
}

// AdminFromEnv reads the admin credential pair.
//
// Both variables are required; the daemon should refuse to start without
// them.
func AdminFromEnv() (AdminCredential, error) {
	username, okU := os.LookupEnv(EnvAdmin)
	password, okP := os.LookupEnv(EnvAdminPassword)
	if !okU || !okP {
		return AdminCredential{}, fmt.Errorf(
			"environment variables %s and %s must be set", EnvAdmin, EnvAdminPassword,
		)
	}
	return AdminCredential{Username: username, Password: password}, nil
}

// Match compares a presented credential pair in constant time.
func (a AdminCredential) Match(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(a.Username), []byte(username))
	p := subtle.ConstantTimeCompare([]byte(a.Password), []byte(password))
	return u == 1 && p == 1
}
