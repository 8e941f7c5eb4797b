package table

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// prefixUpperBound caps a sort-key range so that [prefix, bound) selects
// exactly the keys beginning with prefix.
const prefixUpperBound = "\uffff"

// MongoStore keeps every record in one collection, keyed by the pk/sk pair.
type MongoStore struct {
	Col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{Col: col}
}

func (s *MongoStore) Get(ctx context.Context, key Key) (Item, error) {
	raw, err := s.Col.FindOne(ctx, keyFilter(key)).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *MongoStore) Query(ctx context.Context, pk, skPrefix string) ([]Item, error) {
	filter := bson.M{
		"pk": pk,
		"sk": bson.M{"$gte": skPrefix, "$lt": skPrefix + prefixUpperBound},
	}
	return s.find(ctx, filter)
}

func (s *MongoStore) Scan(ctx context.Context, pkPrefix, sk string) ([]Item, error) {
	filter := bson.M{
		"pk": bson.M{"$gte": pkPrefix, "$lt": pkPrefix + prefixUpperBound},
		"sk": sk,
	}
	return s.find(ctx, filter)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]Item, error) {
	cur, err := s.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sk", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var items []Item
	for cur.Next(ctx) {
		items = append(items, Item(append([]byte(nil), cur.Current...)))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoStore) Put(ctx context.Context, item interface{}) error {
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	key, err := itemKey(raw)
	if err != nil {
		return err
	}
	_, err = s.Col.ReplaceOne(ctx, keyFilter(key), bson.Raw(raw), options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Update(ctx context.Context, key Key, ops FieldOps) error {
	res, err := s.Col.UpdateOne(ctx, keyFilter(key), updateDoc(ops))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MongoStore) UpdateIf(ctx context.Context, key Key, cond Cond, ops FieldOps) error {
	filter := keyFilter(key)
	for field, want := range cond.Equals {
		filter[field] = want
	}
	for _, field := range cond.Unset {
		filter[field] = bson.M{"$exists": false}
	}
	res, err := s.Col.UpdateOne(ctx, filter, updateDoc(ops))
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	// Distinguish a missing item from a failed condition.
	if _, err := s.Get(ctx, key); errors.Is(err, ErrRecordNotFound) {
		return ErrRecordNotFound
	} else if err != nil {
		return err
	}
	return ErrConditionFailed
}

func (s *MongoStore) Delete(ctx context.Context, key Key) error {
	_, err := s.Col.DeleteOne(ctx, keyFilter(key))
	return err
}

func keyFilter(key Key) bson.M {
	return bson.M{"pk": key.PK, "sk": key.SK}
}

func updateDoc(ops FieldOps) bson.M {
	doc := bson.M{}
	if len(ops.Set) > 0 {
		doc["$set"] = ops.Set
	}
	if len(ops.Inc) > 0 {
		inc := bson.M{}
		for field, delta := range ops.Inc {
			inc[field] = delta
		}
		doc["$inc"] = inc
	}
	return doc
}
