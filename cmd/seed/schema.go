package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/internal/repository/postgres"
)

// runSchema creates the tables and indexes if they do not exist.
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				username VARCHAR(255) NOT NULL UNIQUE,
				email VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				first_name VARCHAR(255) NOT NULL DEFAULT '',
				last_name VARCHAR(255) NOT NULL DEFAULT '',
				role VARCHAR(32) NOT NULL DEFAULT 'user',
				status VARCHAR(32) NOT NULL DEFAULT 'active',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				last_login TIMESTAMPTZ
			)
		`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				owner_id UUID NOT NULL REFERENCES %s(id),
				members JSONB NOT NULL DEFAULT '[]',
				category VARCHAR(64) NOT NULL DEFAULT 'development',
				status VARCHAR(32) NOT NULL DEFAULT 'planning',
				priority VARCHAR(32) NOT NULL DEFAULT 'medium',
				start_date TIMESTAMPTZ,
				due_date TIMESTAMPTZ,
				progress INTEGER NOT NULL DEFAULT 0,
				tags TEXT[] NOT NULL DEFAULT '{}',
				attachments JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Projects, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				project_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				status VARCHAR(32) NOT NULL DEFAULT 'todo',
				priority VARCHAR(32) NOT NULL DEFAULT 'medium',
				category VARCHAR(64) NOT NULL DEFAULT '',
				tags TEXT[] NOT NULL DEFAULT '{}',
				creator_id UUID NOT NULL REFERENCES %s(id),
				assignee_id UUID REFERENCES %s(id),
				estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
				due_date TIMESTAMPTZ,
				completed_date TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Tasks, tables.Projects, tables.Users, tables.Users),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_owner ON %s (owner_id)`, tables.Projects, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_members ON %s USING GIN (members)`, tables.Projects, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_project ON %s (project_id)`, tables.Tasks, tables.Tasks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status ON %s (status)`, tables.Tasks, tables.Tasks),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// dropAllTables removes every table for this prefix. Dependents first.
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Tasks, tables.Projects, tables.Users} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// clearAllData empties every table but keeps the schema.
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Tasks, tables.Projects, tables.Users} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
