package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ijfields/IdeaHub-sub002/internal/config"
	"github.com/ijfields/IdeaHub-sub002/internal/repository/postgres"
	"github.com/ijfields/IdeaHub-sub002/internal/seed"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the catalog")
	flag.Parse()

	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("blocked: cannot run --drop-tables in production environment")
	}

	log.Printf("seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("schema ready")

	if *schemaOnly {
		return
	}

	catalog, err := seed.Catalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	log.Printf("seeding %d catalog ideas...", len(catalog))
	for i, idea := range catalog {
		query := `
			INSERT INTO ` + tables.Ideas + ` (title, description, category, difficulty, tools, tags, free_tier)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (title) DO NOTHING
		`
		_, err := pool.Exec(ctx, query,
			idea.Title,
			idea.Description,
			idea.Category,
			idea.Difficulty,
			idea.Tools,
			idea.Tags,
			idea.FreeTier,
		)
		if err != nil {
			log.Printf("failed to seed idea %q: %v", idea.Title, err)
			continue
		}
		log.Printf("seeded idea %d/%d: %s", i+1, len(catalog), idea.Title)
	}

	log.Println("seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	createIdeas := `
		CREATE TABLE IF NOT EXISTS ` + tables.Ideas + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL CHECK (difficulty IN ('Beginner', 'Intermediate', 'Advanced')),
			tools TEXT[] NOT NULL DEFAULT '{}',
			tags TEXT[] NOT NULL DEFAULT '{}',
			free_tier BOOLEAN NOT NULL DEFAULT FALSE,
			view_count INTEGER NOT NULL DEFAULT 0 CHECK (view_count >= 0),
			comment_count INTEGER NOT NULL DEFAULT 0 CHECK (comment_count >= 0),
			project_count INTEGER NOT NULL DEFAULT 0 CHECK (project_count >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createIdeas); err != nil {
		return err
	}

	// parent_id cascades so deleting a comment removes its whole subtree
	createComments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			idea_id UUID NOT NULL REFERENCES ` + tables.Ideas + `(id) ON DELETE CASCADE,
			author_id UUID NOT NULL,
			parent_id UUID REFERENCES ` + tables.Comments + `(id) ON DELETE CASCADE,
			body TEXT NOT NULL,
			flagged BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createComments); err != nil {
		return err
	}

	createProjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			idea_id UUID NOT NULL REFERENCES ` + tables.Ideas + `(id) ON DELETE CASCADE,
			author_id UUID NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			tools TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createProjects); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `ideas_category ON ` + tables.Ideas + `(category)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `ideas_free_tier ON ` + tables.Ideas + `(free_tier)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_idea_created ON ` + tables.Comments + `(idea_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_parent ON ` + tables.Comments + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_author ON ` + tables.Comments + `(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_idea ON ` + tables.Projects + `(idea_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_author ON ` + tables.Projects + `(author_id)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables removes the environment's tables, children first
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Comments, tables.Projects, tables.Ideas} {
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return err
		}
	}
	return nil
}
