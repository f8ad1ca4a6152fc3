// Package sqlite implements user.Repository with gorm on SQLite.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/artem13815/accounts/pkg/user"
)

type userRecord struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	Password     string `gorm:"column:password;not null"`
	FullName     string `gorm:"column:fullname"`
	Role         string `gorm:"column:role"`
	Organization string `gorm:"column:organization"`
	Status       string `gorm:"column:status"`
	CreateDT     string `gorm:"column:create_dt"`
	UpdateDT     string `gorm:"column:update_dt"`
}

func (userRecord) TableName() string { return "users" }

// AutoMigrate creates or updates the users table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// UserRepository implements user.Repository backed by gorm.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository expects the users table to exist; see AutoMigrate.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return user.User{}, notFound(err, "get user by id")
	}
	return rec.toUser(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return user.User{}, notFound(err, "get user by email")
	}
	return rec.toUser(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]user.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toUser())
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	rec := fromUser(u)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			return user.User{}, user.ErrDuplicateEmail
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return rec.toUser(), nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	res := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", u.ID).Updates(map[string]any{
		"email":        u.Email,
		"password":     u.Password,
		"fullname":     u.FullName,
		"role":         u.Role,
		"organization": u.Organization,
		"status":       u.Status,
		"create_dt":    u.CreateDT,
		"update_dt":    u.UpdateDT,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("update user %d: %w", u.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&userRecord{}, id).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (rec userRecord) toUser() user.User {
	return user.User{
		ID:           rec.ID,
		Email:        rec.Email,
		Password:     rec.Password,
		FullName:     rec.FullName,
		Role:         rec.Role,
		Organization: rec.Organization,
		Status:       rec.Status,
		CreateDT:     rec.CreateDT,
		UpdateDT:     rec.UpdateDT,
	}
}

func fromUser(u user.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Password:     u.Password,
		FullName:     u.FullName,
		Role:         u.Role,
		Organization: u.Organization,
		Status:       u.Status,
		CreateDT:     u.CreateDT,
		UpdateDT:     u.UpdateDT,
	}
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
