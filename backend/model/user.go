package model

import (
	"errors"
	"time"

	"papershare/backend/common"
	pserrors "papershare/backend/common/errors"
)

var (
	ErrUserNotFound       = errors.New(pserrors.ErrUserNotFound)
	ErrInvalidCredentials = errors.New(pserrors.ErrInvalidCredentials)
	ErrUserDisabled       = errors.New(pserrors.ErrUserDisabled)
	ErrUsernameTaken      = errors.New(pserrors.ErrUsernameTaken)
	ErrEmailTaken         = errors.New(pserrors.ErrEmailTaken)
	ErrEmptyCredentials   = errors.New(pserrors.ErrEmptyCredentials)
)

// ProfilePicture is the stored descriptor of a user's avatar. URL is what the
// frontend uses; Path is the on-disk location needed for cleanup on replace.
type ProfilePicture struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

// User represents a registered account. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	Id             int64          `json:"id" gorm:"primaryKey"`
	Username       string         `json:"username" gorm:"uniqueIndex;size:30;not null"`
	Email          string         `json:"email" gorm:"uniqueIndex;size:50;not null"`
	Password       string         `json:"-" gorm:"size:100;not null"`
	Role           int            `json:"role" gorm:"type:int;default:1"`
	Status         int            `json:"status" gorm:"type:int;default:1"`
	ProfilePicture ProfilePicture `json:"profile_picture" gorm:"embedded;embeddedPrefix:profile_picture_"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"-"`
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, errors.New(pserrors.ErrEmptyID)
	}
	var user User
	if err := DB.First(&user, id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func GetUserByUsername(username string) (*User, error) {
	if username == "" {
		return nil, ErrUserNotFound
	}
	var user User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Insert hashes the password and stores the record. Uniqueness of username
// and email is checked up front and additionally enforced by the database
// indexes, which covers the check-then-create race between two requests.
func (user *User) Insert() error {
	if user.Username == "" || user.Password == "" || user.Email == "" {
		return ErrEmptyCredentials
	}
	if IsUsernameAlreadyTaken(user.Username) {
		return ErrUsernameTaken
	}
	if IsEmailAlreadyTaken(user.Email) {
		return ErrEmailTaken
	}
	hashedPassword, err := common.Password2Hash(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if user.Role == 0 {
		user.Role = common.RoleCommonUser
	}
	if user.Status == 0 {
		user.Status = common.UserStatusEnabled
	}
	if err := DB.Create(user).Error; err != nil {
		// Lost the race against a concurrent signup with the same identity.
		if IsUsernameAlreadyTaken(user.Username) {
			return ErrUsernameTaken
		}
		return ErrEmailTaken
	}
	return nil
}

func (user *User) Update(updatePassword bool) error {
	if updatePassword {
		hashedPassword, err := common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashedPassword
	}
	return DB.Save(user).Error
}

// AuthenticateUser distinguishes an unknown username from a wrong password so
// the two surface as different error codes.
func AuthenticateUser(username string, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	user, err := GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if !common.ValidatePasswordAndHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status != common.UserStatusEnabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func IsUsernameAlreadyTaken(username string) bool {
	var count int64
	DB.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func IsEmailAlreadyTaken(email string) bool {
	var count int64
	DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}
