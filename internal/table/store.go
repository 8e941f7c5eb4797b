package table

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrRecordNotFound is returned when no item exists under the given key.
	ErrRecordNotFound = errors.New("record not found")
	// ErrConditionFailed is returned by UpdateIf when the item exists but the
	// condition does not hold against its stored values.
	ErrConditionFailed = errors.New("conditional update failed")
)

// Item is one stored record in raw document form. Callers decode it into their
// own types with bson.Unmarshal.
type Item = bson.Raw

// FieldOps describes a single atomic update: all Set assignments and Inc
// deltas are applied together in one store call.
type FieldOps struct {
	Set map[string]interface{}
	Inc map[string]int64
}

// Cond guards an UpdateIf. Every Equals entry must match the stored value and
// every Unset field must be absent from the item.
type Cond struct {
	Equals map[string]interface{}
	Unset  []string
}

// Store is the single-table key-value contract the rest of the service is
// written against. Every mutating call is atomic; a failure leaves the prior
// state unchanged.
type Store interface {
	// Get returns the item under key, or ErrRecordNotFound.
	Get(ctx context.Context, key Key) (Item, error)
	// Query returns all items in a partition whose sort key starts with
	// skPrefix, ordered by sort key. An empty prefix selects the whole
	// partition.
	Query(ctx context.Context, pk, skPrefix string) ([]Item, error)
	// Scan returns all items whose partition key starts with pkPrefix and
	// whose sort key equals sk exactly.
	Scan(ctx context.Context, pkPrefix, sk string) ([]Item, error)
	// Put fully replaces the item, creating it if absent. The value must
	// carry "pk" and "sk" string fields when marshaled to bson.
	Put(ctx context.Context, item interface{}) error
	// Update applies ops to the item under key, or ErrRecordNotFound.
	Update(ctx context.Context, key Key, ops FieldOps) error
	// UpdateIf applies ops only when cond holds, returning
	// ErrConditionFailed otherwise.
	UpdateIf(ctx context.Context, key Key, cond Cond, ops FieldOps) error
	// Delete removes the item under key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key Key) error
}

// itemKey extracts the composite key from a marshaled item.
func itemKey(raw bson.Raw) (Key, error) {
	pk, ok := raw.Lookup("pk").StringValueOK()
	if !ok {
		return Key{}, errors.New("item has no pk field")
	}
	sk, ok := raw.Lookup("sk").StringValueOK()
	if !ok {
		return Key{}, errors.New("item has no sk field")
	}
	return Key{PK: pk, SK: sk}, nil
}
