package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"unimarket/internal/models"
	"unimarket/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, credential verification, and the JWT
// tokens that stand in for sessions.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration // Duration for which JWT is valid
	emailDomain   string        // Required institutional email suffix
}

// NewAuthService creates a new AuthService. emailDomain is the suffix every
// registered email must end with, e.g. "kongu.edu".
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, emailDomain string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // Token valid for 24 hours
		emailDomain:   strings.ToLower(emailDomain),
	}
}

// Register gates the email on the college domain, rejects duplicate emails,
// and stores the user with a bcrypt-hashed password. Users are auto-verified
// at signup.
func (s *AuthService) Register(name, email, password, collegeName string) (*models.User, error) {
	if !strings.HasSuffix(strings.ToLower(email), s.emailDomain) {
		return nil, fmt.Errorf("email %s: %w", email, ErrInvalidDomain)
	}

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		Password:    string(hashedPassword), // Store the hashed password
		CollegeName: collegeName,
		Verified:    true,
	}
	if err := s.userRepo.Create(user); err != nil {
		// The unique index on email is the backstop when two signups race
		// past the existence check above.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("email %s: %w", email, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns a signed token plus the user. The
// error never reveals whether the email exists.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDuration).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                      // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken parses and validates a token, returning the principal it
// identifies.
func (s *AuthService) ValidateToken(tokenString string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	principal := &models.Principal{}
	if id, ok := claims["user_id"].(string); ok {
		principal.ID = id
	}
	if name, ok := claims["name"].(string); ok {
		principal.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		principal.Email = email
	}
	if principal.ID == "" {
		return nil, fmt.Errorf("invalid token: missing user_id claim")
	}
	return principal, nil
}
