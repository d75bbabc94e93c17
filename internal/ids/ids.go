// Package ids converts between store-native document ids and the opaque
// strings used at the API boundary.
package ids

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "studentportal/internal/errors"
)

// New returns a fresh store-native id.
func New() bson.ObjectID {
	return bson.NewObjectID()
}

// Encode returns the 24 character hex form of id.
func Encode(id bson.ObjectID) string {
	return id.Hex()
}

// Decode parses s as a document id. Anything other than 24 hex characters
// yields ErrInvalidIdentifier.
func Decode(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", apperrors.ErrInvalidIdentifier, s)
	}
	return id, nil
}
