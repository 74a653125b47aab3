// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package profile describes the credentials for one Postgres data source.
// A Profile is serialized as-is into connect and legacy translate requests and
// persisted as the saved connection defaults.
package profile

import (
	"fmt"
	"net"
	"strconv"

	apperr "pgassist/cli/internal/errors"
)

// Profile holds the five fields needed to reach a database.
type Profile struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// Default returns the built-in profile used before any defaults are saved.
func Default() Profile {
	return Profile{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "",
		Database: "test",
	}
}

// Validate fails with a Validation error naming the first empty field,
// checked in the order host, port, user, password, database.
func (p Profile) Validate() error {
	switch {
	case p.Host == "":
		return apperr.Required("host", "DB host is required")
	case p.Port <= 0:
		return apperr.Required("port", "DB port is required")
	case p.User == "":
		return apperr.Required("user", "DB user is required")
	case p.Password == "":
		return apperr.Required("password", "DB password is required")
	case p.Database == "":
		return apperr.Required("database", "DB database is required")
	}
	return nil
}

// Address returns host:port.
func (p Profile) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// String renders the profile as a DSN with the password masked.
func (p Profile) String() string {
	secret := ""
	if p.Password != "" {
		secret = ":***"
	}
	return fmt.Sprintf("postgres://%s%s@%s/%s", p.User, secret, p.Address(), p.Database)
}
