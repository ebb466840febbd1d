package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const PurposePasswordRecovery = "password_recovery"

var ErrTokenPurpose = errors.New("token purpose mismatch")

type RecoveryClaims struct {
	UserID  int64  `json:"uid"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateRecoveryToken(secret string, userID int64, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RecoveryClaims{
		UserID:  userID,
		Email:   email,
		Purpose: PurposePasswordRecovery,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func ParseRecoveryToken(tokenStr string, secret string) (*RecoveryClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &RecoveryClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*RecoveryClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Purpose != PurposePasswordRecovery {
		return nil, ErrTokenPurpose
	}
	return claims, nil
}
