// cmd/api/migrations.go

package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// runMigrations creates the schema if it does not exist yet.
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Checking existing tables...")

	migrations := []struct {
		name  string
		query string
	}{
		{
			name: "users table",
			query: `
				CREATE TABLE IF NOT EXISTS users (
					id BIGSERIAL PRIMARY KEY,
					username VARCHAR(50) UNIQUE NOT NULL,
					display_name VARCHAR(100) NOT NULL DEFAULT '',
					bio TEXT,
					interests TEXT[] NOT NULL DEFAULT '{}',
					preferences JSONB,
					preferred_categories TEXT[] NOT NULL DEFAULT '{}',
					preferred_settings TEXT[] NOT NULL DEFAULT '{}',
					budget_min BIGINT,
					budget_max BIGINT,
					preferred_locations TEXT[] NOT NULL DEFAULT '{}',
					liked_date_ideas TEXT[] NOT NULL DEFAULT '{}',
					disliked_date_ideas TEXT[] NOT NULL DEFAULT '{}',
					location_lat DOUBLE PRECISION,
					location_lng DOUBLE PRECISION,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
		},
		{
			name: "date_ideas table",
			query: `
				CREATE TABLE IF NOT EXISTS date_ideas (
					id UUID PRIMARY KEY,
					title VARCHAR(120) NOT NULL,
					description TEXT,
					categories TEXT[] NOT NULL DEFAULT '{}',
					setting VARCHAR(50),
					price_level SMALLINT NOT NULL DEFAULT 1,
					location VARCHAR(100),
					duration VARCHAR(50),
					image_url VARCHAR(500),
					interested_count INTEGER NOT NULL DEFAULT 0,
					lat DOUBLE PRECISION,
					lng DOUBLE PRECISION,
					created_by BIGINT REFERENCES users(id) ON DELETE SET NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
		},
		{
			name: "matches table",
			query: `
				CREATE TABLE IF NOT EXISTS matches (
					id UUID PRIMARY KEY,
					user_a BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					user_b BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					match_score INTEGER NOT NULL DEFAULT 0,
					status VARCHAR(20) NOT NULL DEFAULT 'active',
					matched_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT matches_pair_order CHECK (user_a < user_b),
					CONSTRAINT matches_pair_unique UNIQUE (user_a, user_b)
				)`,
		},
		{
			name:  "date_ideas created_at index",
			query: `CREATE INDEX IF NOT EXISTS idx_date_ideas_created_at ON date_ideas (created_at DESC)`,
		},
		{
			name:  "matches user_a index",
			query: `CREATE INDEX IF NOT EXISTS idx_matches_user_a ON matches (user_a) WHERE status = 'active'`,
		},
		{
			name:  "matches user_b index",
			query: `CREATE INDEX IF NOT EXISTS idx_matches_user_b ON matches (user_b) WHERE status = 'active'`,
		},
	}

	for _, m := range migrations {
		if _, err := db.Exec(m.query); err != nil {
			return fmt.Errorf("migration %q: %w", m.name, err)
		}
		log.Printf("   ✅ %s ready", m.name)
	}

	return nil
}
