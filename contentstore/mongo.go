package contentstore

import (
	"context"
	"fmt"
	"regexp"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient implements Client on top of MongoDB.
type MongoClient struct {
	products *mongo.Collection
	orders   *mongo.Collection
}

func NewMongoClient(db *mongo.Database) *MongoClient {
	return &MongoClient{
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
	}
}

func (m *MongoClient) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (m *MongoClient) FetchProductStock(ctx context.Context, ids []string) ([]models.ProductStock, error) {
	cursor, err := m.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "stock": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stocks []models.ProductStock
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (m *MongoClient) ListProducts(ctx context.Context, page, perPage int) ([]models.Product, int64, error) {
	skip := (page - 1) * perPage
	findOptions := options.Find().
		SetLimit(int64(perPage)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := m.products.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := m.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (m *MongoClient) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	filter := bson.M{"name": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(term),
		"$options": "i",
	}}
	cursor, err := m.products.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (m *MongoClient) ProductSlugs(ctx context.Context, ids []string) ([]string, error) {
	cursor, err := m.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"slug": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Slug != "" {
			slugs = append(slugs, d.Slug)
		}
	}
	return slugs, nil
}

func (m *MongoClient) Patch(id string) Patch {
	return &mongoPatch{collection: m.products, id: id, fields: bson.M{}}
}

func (m *MongoClient) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	res, err := m.orders.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return order, nil
}

func (m *MongoClient) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	cursor, err := m.orders.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// mongoPatch applies a plain $set with no document version guard, matching the
// store's last-write-wins update semantics.
type mongoPatch struct {
	collection *mongo.Collection
	id         string
	fields     bson.M
}

func (p *mongoPatch) Set(fields map[string]interface{}) Patch {
	for k, v := range fields {
		p.fields[k] = v
	}
	return p
}

func (p *mongoPatch) Commit(ctx context.Context) error {
	res, err := p.collection.UpdateOne(ctx, bson.M{"_id": p.id}, bson.M{"$set": p.fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("document %s not found", p.id)
	}
	return nil
}
