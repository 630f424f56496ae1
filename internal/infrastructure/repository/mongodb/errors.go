package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/database"
)

var dupIndexPattern = regexp.MustCompile(`index:\s+(\S+)\s+dup key`)

// fields reported for each unique index, using API field names
var indexFields = map[string]string{
	database.IndexPlayerID:       "playerId",
	database.IndexUserID:         "userId",
	database.IndexSequenceNumber: "sequenceNumber",
	database.IndexEmail:          "email",
	database.IndexUsername:       "username",
	database.IndexPhone:          "phone",
}

// duplicateField extracts the offending field from a duplicate key error.
func duplicateField(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return fieldFromMessage(e.Message)
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return fieldFromMessage(ce.Message)
	}
	return fieldFromMessage(err.Error())
}

func fieldFromMessage(msg string) string {
	m := dupIndexPattern.FindStringSubmatch(msg)
	if len(m) < 2 {
		return "unknown"
	}
	if field, ok := indexFields[m[1]]; ok {
		return field
	}
	return m[1]
}

// translateError maps driver errors to domain errors.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.ErrPlayerNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return &entity.DuplicateKeyError{Field: duplicateField(err)}
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	return mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded)
}
