// Package backup ejecuta pg_dump como utilidad externa de respaldo.
package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	appbackup "github.com/jcastano/erp-nodo-api/internal/application/backup"
	"github.com/jcastano/erp-nodo-api/pkg/config"
)

var _ appbackup.Dumper = (*PgDump)(nil)

// PgDump implementa el puerto Dumper invocando pg_dump.
type PgDump struct {
	db config.DBConfig
}

// NewPgDump construye el runner con la configuración de la base local.
func NewPgDump(db config.DBConfig) *PgDump {
	return &PgDump{db: db}
}

// Dump escribe un volcado SQL de la base en path. El error del proceso se
// devuelve tal cual; el caso de uso lo loguea y lo convierte en boolean false
// (nunca reintenta).
func (d *PgDump) Dump(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-U", d.db.User,
		"-h", d.db.Host,
		"-p", strconv.Itoa(d.db.Port),
		"-d", d.db.DBName,
		"--no-owner", "--no-privileges",
		"-f", path,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+d.db.Password)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pg_dump: %w: %s", err, string(out))
	}
	return nil
}
