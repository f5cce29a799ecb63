package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gopetstore/petstore/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return &mongoRepository{
		collection: db.Collection("carts"),
	}
}

// cartDoc is the persisted shape of a cart. Prices are stored as decimal
// strings; decimal.Decimal has no bson representation of its own.
type cartDoc struct {
	ID             string        `bson:"_id"`
	Items          []cartItemDoc `bson:"items"`
	CreatedAt      time.Time     `bson:"created_at"`
	LastModifiedAt time.Time     `bson:"last_modified_at"`
}

type cartItemDoc struct {
	PetID    int64  `bson:"pet_id"`
	PetName  string `bson:"pet_name"`
	PetPrice string `bson:"pet_price"`
	Quantity int    `bson:"quantity"`
	ImageURL string `bson:"image_url"`
}

func toDoc(cart *domain.Cart) cartDoc {
	doc := cartDoc{
		ID:             cart.CartID,
		Items:          make([]cartItemDoc, 0, len(cart.Items)),
		CreatedAt:      cart.CreatedAt,
		LastModifiedAt: cart.LastModifiedAt,
	}
	for _, item := range cart.Items {
		doc.Items = append(doc.Items, cartItemDoc{
			PetID:    item.PetID,
			PetName:  item.PetName,
			PetPrice: item.PetPrice.String(),
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
		})
	}
	return doc
}

func fromDoc(doc cartDoc) (*domain.Cart, error) {
	cart := &domain.Cart{
		CartID:         doc.ID,
		CreatedAt:      doc.CreatedAt,
		LastModifiedAt: doc.LastModifiedAt,
	}
	for _, item := range doc.Items {
		price, err := decimal.NewFromString(item.PetPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", item.PetPrice, err)
		}
		cart.Items = append(cart.Items, domain.CartItem{
			PetID:    item.PetID,
			PetName:  item.PetName,
			PetPrice: price,
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
		})
	}
	return cart, nil
}

func (m *mongoRepository) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var doc cartDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return fromDoc(doc)
}

func (m *mongoRepository) UpsertCart(ctx context.Context, cart *domain.Cart) error {
	doc := toDoc(cart)

	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (m *mongoRepository) DeleteCart(ctx context.Context, sessionID string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// CreateIndexes sets the TTL index so abandoned carts age out.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "last_modified_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60),
	}

	if _, err := db.Collection("carts").Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
