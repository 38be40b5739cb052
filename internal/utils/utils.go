package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// GenerateNumericCode returns a random string of length decimal digits
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// NormalizePagination clamps page and limit to usable values
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages returns the number of pages needed for total items
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
