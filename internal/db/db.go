package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/xxxsen/afternote/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Handle is an open database together with the placeholder style its driver
// expects.
type Handle struct {
	*sql.DB
	driver string
}

func (h *Handle) Driver() string {
	return h.driver
}

func (h *Handle) BindType() int {
	if h.driver == config.DriverPostgres {
		return sqlx.DOLLAR
	}
	return sqlx.QUESTION
}

func Open(cfg config.DatabaseConfig) (*Handle, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(cfg)
	case config.DriverSQLite, "":
		return openSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func openPostgres(cfg config.DatabaseConfig) (*Handle, error) {
	dsn := cfg.DSN
	if dsn == "" {
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslmode)
	}
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Handle{DB: conn, driver: config.DriverPostgres}, nil
}

func openSQLite(path string) (*Handle, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Handle{DB: conn, driver: config.DriverSQLite}, nil
}

func ApplyMigrations(h *Handle) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, file := range files {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+file)
		if err != nil {
			return err
		}
		queries := strings.Split(string(content), ";")
		for _, q := range queries {
			q = strings.TrimSpace(q)
			if q == "" {
				continue
			}
			if _, err := h.Exec(q); err != nil {
				if strings.Contains(err.Error(), "already exists") {
					continue
				}
				return fmt.Errorf("execute query in %s: %w", file, err)
			}
		}
	}
	return nil
}
