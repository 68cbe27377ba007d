package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

// createTables creates the application schema. The unique index on
// users.username is the authoritative duplicate-handle guard; interval
// and connection rows cascade with their owning user.
func createTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username)`,
		`CREATE TABLE IF NOT EXISTS user_time_intervals (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			week_day SMALLINT NOT NULL CHECK (week_day BETWEEN 0 AND 6),
			start_time_in_minutes INTEGER NOT NULL CHECK (start_time_in_minutes >= 0 AND start_time_in_minutes < 1440),
			end_time_in_minutes INTEGER NOT NULL CHECK (end_time_in_minutes > 0 AND end_time_in_minutes < 1440),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (start_time_in_minutes < end_time_in_minutes)
		)`,
		`CREATE INDEX IF NOT EXISTS user_time_intervals_user_id_idx ON user_time_intervals (user_id)`,
		`CREATE TABLE IF NOT EXISTS google_connections (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
			provider_user TEXT NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL DEFAULT '',
			scopes TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// dropTables drops the application schema
func dropTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`DROP TABLE IF EXISTS google_connections`,
		`DROP TABLE IF EXISTS user_time_intervals`,
		`DROP TABLE IF EXISTS users`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

// seedData inserts a development user with a sample weekly schedule
func seedData(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
		INSERT INTO users (id, username, name)
		VALUES ('00000000-0000-0000-0000-000000000001', 'dev-user', 'Dev User')
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	_, err = conn.Exec(ctx, `
		INSERT INTO user_time_intervals (id, user_id, week_day, start_time_in_minutes, end_time_in_minutes)
		VALUES
			('00000000-0000-0000-0000-000000000101', '00000000-0000-0000-0000-000000000001', 1, 540, 1080),
			('00000000-0000-0000-0000-000000000102', '00000000-0000-0000-0000-000000000001', 3, 540, 1080)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed intervals: %w", err)
	}

	return nil
}
