package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/inkwell/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("please provide all required fields")
	ErrInvalidUsername    = errors.New("username must be at least 3 characters of letters, numbers and underscores")
	ErrInvalidEmail       = errors.New("please provide a valid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// AuthService handles signup and credential verification.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService instance.
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb}
}

// SignUpInput represents the fields required to register an account.
type SignUpInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// SignUp 注册新用户。邮箱与用户名的占用检查走同一条查询，
// 冲突时报告具体是哪个字段被占用。
func (s *AuthService) SignUp(input SignUpInput) (*db.User, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" || username == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if len(username) < 3 || !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	var existing db.User
	err := s.db.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		if existing.Email == email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn verifies credentials by email. Unknown email and wrong password
// return the same error so accounts cannot be enumerated.
func (s *AuthService) SignIn(email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser resolves a user id to the stored record.
func (s *AuthService) GetUser(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
