package utils

import (
	"github.com/golang-jwt/jwt"
)

var jwtSecret = []byte("RWSA") // 在實際應用中，這應該是一個環境變量

// StudentClaims 是學生 token 的內容，只攜帶學生的身份
type StudentClaims struct {
	StudentID uint `json:"id"`
	jwt.StandardClaims
}

// GenerateToken 為學生簽發一個新的 JWT token
// 簽發本身由外部的帳號系統負責，這裡保留供該系統與測試使用
func GenerateToken(studentID uint) (string, error) {
	claims := StudentClaims{
		StudentID: studentID,
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(jwtSecret)
}

// ParseToken 解析和驗證學生的 JWT token
func ParseToken(token string) (*StudentClaims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &StudentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*StudentClaims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	return nil, err
}
