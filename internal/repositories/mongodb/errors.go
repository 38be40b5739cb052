package mongodb

import (
	"errors"

	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// translate maps driver errors onto repository errors
func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrDuplicate
	}
	return err
}

func pageSkip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit)
}
