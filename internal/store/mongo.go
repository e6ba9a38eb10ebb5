package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopmart/shopmart-golang/internal/models"
)

// MongoProducts is the ProductStore backed by the 'products' collection.
type MongoProducts struct {
	coll *mongo.Collection
}

func NewMongoProducts(db *mongo.Database) *MongoProducts {
	return &MongoProducts{coll: db.Collection("products")}
}

func (s *MongoProducts) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "productId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProducts) FindByProductID(ctx context.Context, productID int) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"productId": productID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// refFilter matches a route parameter against productId, or against _id when
// it parses as a hex document ID.
func refFilter(ref string) (bson.M, error) {
	ors := []bson.M{}
	if n, err := strconv.Atoi(ref); err == nil {
		ors = append(ors, bson.M{"productId": n})
	}
	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		ors = append(ors, bson.M{"_id": oid})
	}
	if len(ors) == 0 {
		return nil, ErrNotFound
	}
	return bson.M{"$or": ors}, nil
}

func (s *MongoProducts) FindByRef(ctx context.Context, ref string) (*models.Product, error) {
	filter, err := refFilter(ref)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := s.coll.FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *MongoProducts) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	result, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		// The unique index on productId rejects duplicates.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateProductID
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *MongoProducts) UpdateByRef(ctx context.Context, ref string, upd models.ProductUpdate) (*models.Product, error) {
	filter, err := refFilter(ref)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *MongoProducts) DeleteByRef(ctx context.Context, ref string) error {
	filter, err := refFilter(ref)
	if err != nil {
		return err
	}
	result, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProducts) DeleteAll(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (s *MongoProducts) InsertMany(ctx context.Context, products []models.Product) error {
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

// MongoCarts is the CartStore backed by the 'carts' collection.
type MongoCarts struct {
	coll *mongo.Collection
}

func NewMongoCarts(db *mongo.Database) *MongoCarts {
	return &MongoCarts{coll: db.Collection("carts")}
}

func (s *MongoCarts) FindBySession(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (s *MongoCarts) Save(ctx context.Context, cart *models.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}

	update := bson.M{
		"$set": bson.M{
			"items":      cart.Items,
			"totalItems": cart.TotalItems,
			"totalPrice": cart.TotalPrice,
			"updatedAt":  cart.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"sessionId": cart.SessionID,
			"createdAt": now,
		},
	}
	result, err := s.coll.UpdateOne(ctx, bson.M{"sessionId": cart.SessionID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		cart.ID = oid
		cart.CreatedAt = now
	}
	return nil
}
