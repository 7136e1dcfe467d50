package mariadb

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/rtsp-agents/cameras-backend/internal/config"
)

const (
	CamerasTable = "cameras"
	UsersTable   = "users"
	AdminsTable  = "admins"
)

func New(cfg config.DB) (*sqlx.DB, error) {
	const op = "storage.mariadb.New"

	db, err := sqlx.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}

func DSN(cfg config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
}
