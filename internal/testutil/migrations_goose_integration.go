//go:build integration

package testutil

import (
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Gunvolt24/order_intake/internal/repo/postgres"
)

// MigrationsDir — <repo_root>/migrations, вычисляется от расположения этого файла.
func MigrationsDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations"))
}

// ApplyMigrationsGoose — схема заказов на тестовой базе.
func ApplyMigrationsGoose(dsn string) error {
	return postgres.Migrate(dsn, MigrationsDir(), log.New(os.Stdout, "[goose] ", 0))
}
