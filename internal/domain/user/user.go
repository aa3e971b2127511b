package user

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Name is a user's display name.
type Name struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	MiddleName *string `json:"middle_name,omitempty"`
}

// Display joins the name parts for presentation.
func (n Name) Display() string {
	parts := []string{n.FirstName}
	if n.MiddleName != nil && *n.MiddleName != "" {
		parts = append(parts, *n.MiddleName)
	}
	if n.LastName != "" {
		parts = append(parts, n.LastName)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// User is an account known to the exchange service.
type User struct {
	UserID       string    `json:"user_id"`
	Name         Name      `json:"user_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Registration carries the sign-up form.
type Registration struct {
	Name            Name   `json:"user_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Email           string `json:"email"`
}

// Credentials carries the login form.
type Credentials struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("email is invalid")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// Validate checks the form before it is sent.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name.FirstName) == "" || strings.TrimSpace(r.Name.LastName) == "" {
		return errors.New("first and last name are required")
	}
	if err := ValidateEmail(NormalizeEmail(r.Email)); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	return nil
}

// Validate checks the form before it is sent.
func (c Credentials) Validate() error {
	if err := ValidateEmail(NormalizeEmail(c.Email)); err != nil {
		return err
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash string, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
