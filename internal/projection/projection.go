// Package projection turns stored documents into their API representation:
// the store-native _id becomes a string "id", every timestamp becomes an
// ISO-8601 UTC string, and fields absent from the document stay absent.
package projection

import (
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"studentportal/internal/ids"
)

// TimeLayout is the canonical timestamp form. Stored dates have millisecond
// precision, so three fractional digits are always emitted.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Object is a projected document.
type Object = map[string]any

// FormatTime renders t in the canonical layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Document projects a single document. A nil document (including a typed nil
// pointer) projects to nil.
func Document(doc any) (Object, error) {
	if isNil(doc) {
		return nil, nil
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	out := convertDoc(d)
	if id, ok := out["_id"]; ok {
		out["id"] = id
		delete(out, "_id")
	}
	return out, nil
}

// Documents projects every element of docs, preserving order.
func Documents[T any](docs []T) ([]Object, error) {
	out := make([]Object, 0, len(docs))
	for i := range docs {
		obj, err := Document(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func convertDoc(d bson.D) Object {
	out := make(Object, len(d))
	for _, e := range d {
		out[e.Key] = convertValue(e.Value)
	}
	return out
}

func convertValue(v any) any {
	switch val := v.(type) {
	case bson.ObjectID:
		return ids.Encode(val)
	case bson.DateTime:
		return FormatTime(val.Time())
	case time.Time:
		return FormatTime(val)
	case bson.D:
		return convertDoc(val)
	case bson.M:
		out := make(Object, len(val))
		for k, item := range val {
			out[k] = convertValue(item)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = convertValue(item)
		}
		return out
	default:
		return val
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
