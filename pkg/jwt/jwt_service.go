package jwt

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/utils"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v4"
	"log"
	"time"
)

const tokenTTL = 12 * time.Hour

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) string
		GetPrincipal(token string) (domain.Principal, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	secretKey := utils.GetConfig("JWT_SECRET")
	return secretKey
}

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(getSecretKey())
}

func NewJWTServiceWithSecret(secret string) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    "RESTAURANT-POS",
	}
}

// GenerateTokenUser mints a staff token. Production tokens come from the
// identity provider; this is used by the seed command and tests.
func (j *jwtService) GenerateTokenUser(userId string, role string) string {
	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) validateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetPrincipal(token string) (domain.Principal, error) {
	t_Token, err := j.validateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrTokenExpired
		}
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" {
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	if claims.Issuer != j.issuer {
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	role := claims.Role
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Principal{UserID: claims.UserID, Role: role}, nil
}
