package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var defaultRoles []byte

// RoleSeed is a role that must exist after startup.
type RoleSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type roleSeedFile struct {
	Roles []RoleSeed `yaml:"roles"`
}

// LoadRoleSeeds reads role seeds from path, or the built-in set when path
// is empty.
func LoadRoleSeeds(path string) ([]RoleSeed, error) {
	data := defaultRoles
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read role seed file: %w", err)
		}
		data = b
	}

	return parseRoleSeeds(data)
}

func parseRoleSeeds(data []byte) ([]RoleSeed, error) {
	var f roleSeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse role seeds: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Roles))
	for _, r := range f.Roles {
		if r.Name == "" {
			return nil, errors.New("role seed without name")
		}
		if _, ok := seen[r.Name]; ok {
			return nil, fmt.Errorf("duplicate role seed %q", r.Name)
		}
		seen[r.Name] = struct{}{}
	}

	return f.Roles, nil
}

// SeedRoles inserts missing roles. Existing roles are left untouched, so
// running it repeatedly is safe.
func SeedRoles(ctx context.Context, db *sql.DB, seeds []RoleSeed) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO roles (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	for _, s := range seeds {
		if _, err := tx.ExecContext(ctx, query, s.Name, s.Description); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit role seeds: %w", err)
	}
	return nil
}
