package migration

import (
	"context"
)

// UserSeeder inserts the fixed development users when they are missing
type UserSeeder interface {
	SeedDefaultUsers(ctx context.Context) (int, error)
}

// CreateDefaultUsers seeds the default users and logs how many were inserted
func (m *MigrationManager) CreateDefaultUsers(ctx context.Context, seeder UserSeeder) error {
	created, err := seeder.SeedDefaultUsers(ctx)
	if err != nil {
		m.logger.Error("Failed to seed default users", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Default users ensured", map[string]any{
		"created": created,
	})
	return nil
}
