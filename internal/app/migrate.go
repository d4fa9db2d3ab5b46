package app

import (
	"errors"
	"net/url"
	"os"

	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"

	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
)

func Migrate(pgUrl string) {
	pgUrl, err := withSSLMode(pgUrl)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	log.Info("Applying migrations")

	var (
		connAttempts = defaultAttempts
		mgrt         *migrate.Migrate
	)

	migrationsPath := "migrations"

	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		log.Fatalf("migrations directory %q does not exist", migrationsPath)
	}

	for connAttempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, pgUrl)
		if err == nil {
			break
		}

		time.Sleep(defaultTimeout)
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
		connAttempts--
	}

	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer mgrt.Close()

	if err = mgrt.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return
	}

	log.Info("Migration successful up")
}

// withSSLMode disables TLS for the migration connection unless the URL
// already chooses an sslmode.
func withSSLMode(pgUrl string) (string, error) {
	u, err := url.Parse(pgUrl)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
