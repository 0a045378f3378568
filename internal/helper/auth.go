package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type Auth struct {
	Secret string
	TTL    time.Duration
}

func SetupAuth(secret string, ttl time.Duration) Auth {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return Auth{
		Secret: secret,
		TTL:    ttl,
	}
}

func (a Auth) GenerateToken(userID uint, email string, userType domain.UserType) (string, time.Time, error) {
	if userID == 0 || email == "" || userType == "" {
		return "", time.Time{}, errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	exp := now.Add(a.TTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   userID,
		"email":     email,
		"user_type": string(userType),
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", time.Time{}, errors.New("unable to sign the token")
	}

	return tokenStr, time.Unix(exp.Unix(), 0), nil
}

// VerifyToken accepts "Bearer <token>" or a bare token.
func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		tokenString = strings.TrimSpace(tokenString[len("bearer "):])
		if tokenString == "" {
			return dto.AuthResponse{}, errors.New("invalid token format")
		}
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return dto.AuthResponse{}, errors.New("token expired")
		}
		return dto.AuthResponse{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, errors.New("invalid token claims")
	}

	userID, _ := claims["user_id"].(float64)
	email, _ := claims["email"].(string)
	userType, _ := claims["user_type"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)
	if userID <= 0 || email == "" || userType == "" {
		return dto.AuthResponse{}, errors.New("invalid token claims")
	}

	return dto.AuthResponse{
		UserID:   uint(userID),
		Email:    email,
		UserType: userType,
		Iat:      iat,
		Expiry:   exp,
	}, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.AuthResponse, error) {
	claims, ok := ctx.Locals("user").(dto.AuthResponse)
	if !ok {
		return dto.AuthResponse{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
