package models

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/utils"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100;not null;unique" json:"email" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginInfo struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

func Register(ctx context.Context, input *NewUser) (*User, error) {

	db := config.GetDB()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, utils.NewValidationError("email and password are required")
	}
	if !utils.IsValidEmail(email) {
		return nil, utils.NewValidationError("invalid email address")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.ErrorDuplicateRecord
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:     html.EscapeString(strings.TrimSpace(input.Name)),
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, utils.ErrorDuplicateRecord
		}
		return nil, err
	}

	user.PrepareGive()
	return &user, nil
}

func Login(ctx context.Context, email string, password string) (*LoginInfo, error) {

	db := config.GetDB()

	user := User{}
	err := db.WithContext(ctx).Model(&User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&user).Error
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	err = utils.ComparePassword(user.Password, password)
	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return nil, errors.New("invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	token, err := utils.JwtGenerate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user.PrepareGive()
	return &LoginInfo{Token: token, User: &user}, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {

	db := config.GetDB()
	var result User

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	result.PrepareGive()
	return &result, nil
}
