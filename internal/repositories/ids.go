package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when an identifier is not a valid object id hex string
var ErrInvalidID = errors.New("invalid id")

// ParseID converts the external string form of an identifier into the native object id
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	return oid, nil
}

// insertedID converts the id returned by an insert into its string form
func insertedID(raw any) (string, error) {
	oid, ok := raw.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", raw)
	}
	return oid.Hex(), nil
}
