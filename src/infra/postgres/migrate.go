package postgres

import (
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations aplica as migrations pendentes contra o host de escrita.
func RunMigrations(host string, port string, dbname string, username string, password string, folder string) error {
	databaseURL := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable", username, password, host, port, dbname)

	m, err := migrate.New("file://"+folder, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("Successfully applied migrations")
	return nil
}
