// migrations содержит SQL-миграции схемы board-service.
package migrations

import "embed"

// FS — встроенные SQL-файлы в формате golang-migrate (<version>_<name>.<up|down>.sql).
//
//go:embed *.sql
var FS embed.FS
