package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hokago/nichian/internal/auth"
	"github.com/hokago/nichian/internal/models"
)

// RegisterStore creates a store account. The login id check and the insert
// run in one transaction; a unique-index race is still reported as a conflict.
func RegisterStore(db *gorm.DB, name, loginID, password string) (*models.Store, error) {
	name = NormName(name)
	loginID = NormLoginID(loginID)
	if name == "" || loginID == "" || password == "" {
		return nil, invalid("店舗名・ログインID・パスワードを入力してください")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	store := models.Store{
		ID:           uuid.NewString(),
		Name:         name,
		LoginID:      loginID,
		PasswordHash: hash,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Store{}).Where("login_id = ?", loginID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		return tx.Create(&store).Error
	})
	if err != nil {
		if errors.Is(err, ErrConflict) || isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &store, nil
}

// AuthenticateStore checks credentials. Unknown ids and wrong passwords are
// indistinguishable to the caller.
func AuthenticateStore(db *gorm.DB, loginID, password string) (*models.Store, error) {
	loginID = NormLoginID(loginID)
	if loginID == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var store models.Store
	if err := db.Where("login_id = ?", loginID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(store.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &store, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "unique") || strings.Contains(le, "duplicate key")
}
