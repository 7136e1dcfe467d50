package authstorage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/rtsp-agents/cameras-backend/internal/domain/constants"
	"github.com/rtsp-agents/cameras-backend/internal/domain/errs"
	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
	"github.com/rtsp-agents/cameras-backend/internal/storage/mariadb"
)

const duplicateEntry = 1062

type AuthStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *AuthStorage {
	return &AuthStorage{db: db}
}

func (s *AuthStorage) SaveUser(email, userType string, passHash []byte) (int, error) {
	const op = "storage.mariadb.auth.SaveUser"

	query := fmt.Sprintf("INSERT INTO %s (email, password_hash) VALUES (?, ?)", mariadb.UsersTable)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			tx.Commit()
		}
	}()

	res, err := tx.Exec(query, email, passHash)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntry {
			return 0, fmt.Errorf("%s: %w", op, errs.ErrUserExists)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if userType == constants.Admin {
		adminQuery := fmt.Sprintf("INSERT INTO %s (user_id) VALUES (?)", mariadb.AdminsTable)
		if _, err = tx.Exec(adminQuery, id); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return int(id), nil
}

func (s *AuthStorage) User(email string) (models.User, error) {
	const op = "storage.mariadb.auth.User"

	var user models.User
	query := fmt.Sprintf("SELECT id, email, password_hash FROM %s WHERE email = ?", mariadb.UsersTable)

	if err := s.db.Get(&user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	query = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = ?)", mariadb.AdminsTable)
	var isAdmin bool

	err := s.db.Get(&isAdmin, query, user.Id)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if isAdmin {
		user.UserType = constants.Admin
	} else {
		user.UserType = constants.User
	}

	return user, nil
}
