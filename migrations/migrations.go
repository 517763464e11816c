// Package migrations holds the ClickHouse schema as goose migrations
package migrations

import (
	"bufio"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Up applies all pending migrations and records them in goose's version table
func Up(db *sql.DB) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("clickhouse"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Up(db, ".")
}

// Run executes a goose command (up, down, status, version, reset)
func Run(db *sql.DB, command string) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("clickhouse"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "status":
		return goose.Status(db, ".")
	case "version":
		return goose.Version(db, ".")
	case "reset":
		return goose.Reset(db, ".")
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// Statements returns the Up statements of all migrations in version order.
// Tests apply them directly to a fresh database without goose bookkeeping.
func Statements() ([]string, error) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var statements []string
	for _, name := range names {
		data, err := FS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		statements = append(statements, upStatements(string(data))...)
	}
	return statements, nil
}

func upStatements(sql string) []string {
	var statements []string
	var current strings.Builder
	inUp := false

	scanner := bufio.NewScanner(strings.NewReader(sql))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "-- +goose Up"):
			inUp = true
			continue
		case strings.HasPrefix(trimmed, "-- +goose Down"):
			inUp = false
			continue
		case !inUp || trimmed == "" || strings.HasPrefix(trimmed, "--"):
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			statements = append(statements, strings.TrimSuffix(strings.TrimSpace(current.String()), ";"))
			current.Reset()
		}
	}
	return statements
}
