// Package migrations holds one-shot maintenance jobs run outside the server.
package migrations

import (
	"context"
	"fmt"
	"log/slog"

	"notesmanager/model"
)

type RoleStore interface {
	BackfillMissingRoles(ctx context.Context) (int64, error)
	BackfillNullRoles(ctx context.Context) (int64, error)
	PromoteByEmail(ctx context.Context, email string) (int64, error)
	CountByRole(ctx context.Context) ([]model.RoleCount, error)
}

type FixRolesResult struct {
	MissingFixed int64
	NullFixed    int64
	Promoted     bool
	ByRole       []model.RoleCount
}

// FixRoles gives every legacy user record an explicit role and promotes
// adminEmail to admin if such a user exists. It is safe to run again.
func FixRoles(ctx context.Context, store RoleStore, adminEmail string) (*FixRolesResult, error) {
	res := &FixRolesResult{}
	var err error

	if res.MissingFixed, err = store.BackfillMissingRoles(ctx); err != nil {
		return nil, fmt.Errorf("backfill missing roles: %w", err)
	}
	slog.InfoContext(ctx, "users without role set to user", slog.Int64("modified", res.MissingFixed))

	if res.NullFixed, err = store.BackfillNullRoles(ctx); err != nil {
		return nil, fmt.Errorf("backfill null roles: %w", err)
	}
	slog.InfoContext(ctx, "users with null role set to user", slog.Int64("modified", res.NullFixed))

	promoted, err := store.PromoteByEmail(ctx, adminEmail)
	if err != nil {
		return nil, fmt.Errorf("promote admin: %w", err)
	}
	res.Promoted = promoted > 0
	if res.Promoted {
		slog.InfoContext(ctx, "admin role granted", slog.String("email", adminEmail))
	} else {
		slog.InfoContext(ctx, "admin user not found or already admin", slog.String("email", adminEmail))
	}

	if res.ByRole, err = store.CountByRole(ctx); err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	for _, rc := range res.ByRole {
		role := "<none>"
		if rc.Role != nil {
			role = *rc.Role
		}
		slog.InfoContext(ctx, "users by role", slog.String("role", role), slog.Int64("count", rc.Count))
	}
	return res, nil
}
