package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
)

var ErrMissingEnv = errors.New("missing env variables")

// Postgres holds the connection settings of the postgres store.
type Postgres struct {
	User     string
	Password string
	Host     string
	Port     uint16
	Name     string
	SSLMode  string
}

// secretEnv reads key, or the file named by key_FILE as docker secrets are
// mounted. Empty values count as unset.
func secretEnv(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read %s_FILE: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// PostgresFromEnv assembles the settings from POSTGRES_* variables. Port
// defaults to 5432 and sslmode to disable; the rest are required.
func PostgresFromEnv() (*Postgres, error) {
	password, err := secretEnv("POSTGRES_PASSWORD")
	if err != nil {
		return nil, err
	}

	pg := &Postgres{
		User:     os.Getenv("POSTGRES_USER"),
		Password: password,
		Host:     os.Getenv("POSTGRES_HOST"),
		Name:     os.Getenv("POSTGRES_DB"),
		SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),
	}

	var missing []string
	for key, v := range map[string]string{
		"POSTGRES_USER":     pg.User,
		"POSTGRES_PASSWORD": pg.Password,
		"POSTGRES_HOST":     pg.Host,
		"POSTGRES_DB":       pg.Name,
	} {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	port, err := strconv.ParseUint(envOr("POSTGRES_PORT", "5432"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("unable to parse POSTGRES_PORT: %w", err)
	}
	pg.Port = uint16(port)

	return pg, nil
}

func (p Postgres) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(int(p.Port))),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// PostgresURL prefers DATABASE_URL (or DATABASE_URL_FILE) and falls back to
// the POSTGRES_* variables.
func PostgresURL() (string, error) {
	dbURL, err := secretEnv("DATABASE_URL")
	if err != nil || dbURL != "" {
		return dbURL, err
	}

	pg, err := PostgresFromEnv()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set: %w", err)
	}
	return pg.URL(), nil
}
