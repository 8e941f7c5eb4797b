package table

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemStore is an in-process Store with the same semantics as MongoStore,
// including atomic increments and conditional updates. It backs the service
// tests and local runs without a database.
type MemStore struct {
	mu    sync.Mutex
	items map[Key]bson.Raw
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[Key]bson.Raw)}
}

func (s *MemStore) Get(ctx context.Context, key Key) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.items[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return raw, nil
}

func (s *MemStore) Query(ctx context.Context, pk, skPrefix string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []Item
	for key, raw := range s.items {
		if key.PK == pk && strings.HasPrefix(key.SK, skPrefix) {
			items = append(items, raw)
		}
	}
	sortItems(items)
	return items, nil
}

func (s *MemStore) Scan(ctx context.Context, pkPrefix, sk string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []Item
	for key, raw := range s.items {
		if strings.HasPrefix(key.PK, pkPrefix) && key.SK == sk {
			items = append(items, raw)
		}
	}
	sortItems(items)
	return items, nil
}

func (s *MemStore) Put(ctx context.Context, item interface{}) error {
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	key, err := itemKey(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = raw
	return nil
}

func (s *MemStore) Update(ctx context.Context, key Key, ops FieldOps) error {
	return s.update(key, Cond{}, ops)
}

func (s *MemStore) UpdateIf(ctx context.Context, key Key, cond Cond, ops FieldOps) error {
	return s.update(key, cond, ops)
}

func (s *MemStore) Delete(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemStore) update(key Key, cond Cond, ops FieldOps) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.items[key]
	if !ok {
		return ErrRecordNotFound
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for field, want := range cond.Equals {
		have, ok := doc[field]
		if !ok || !valuesEqual(have, want) {
			return ErrConditionFailed
		}
	}
	for _, field := range cond.Unset {
		if _, ok := doc[field]; ok {
			return ErrConditionFailed
		}
	}
	for field, value := range ops.Set {
		doc[field] = value
	}
	for field, delta := range ops.Inc {
		cur, ok := asInt64(doc[field])
		if !ok {
			cur = 0
		}
		doc[field] = cur + delta
	}
	updated, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	s.items[key] = updated
	return nil
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		si, _ := items[i].Lookup("sk").StringValueOK()
		sj, _ := items[j].Lookup("sk").StringValueOK()
		return si < sj
	})
}

// valuesEqual compares loosely across the integer widths bson round-trips
// produce (int vs int32 vs int64).
func valuesEqual(a, b interface{}) bool {
	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			return ai == bi
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
