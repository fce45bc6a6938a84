package services

import (
	"errors"
	"time"

	"github.com/Vandammecasper/voting-app/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

// SignInAnonymously mints a fresh opaque user id and a bearer token for
// it. The client keeps the token; losing it means becoming a new user.
func (s *AuthService) SignInAnonymously() (string, string, error) {
	identity := models.Identity{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&identity).Error; err != nil {
		return "", "", err
	}

	token, err := s.GenerateToken(identity.ID)
	if err != nil {
		return "", "", err
	}
	return identity.ID, token, nil
}

func (s *AuthService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", errors.New("invalid uid in token")
	}

	return uid, nil
}
