package entity

import (
	"context"

	"github.com/allowx-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Allowlist{},
		&Participation{},
		&Winner{},
	)
}
