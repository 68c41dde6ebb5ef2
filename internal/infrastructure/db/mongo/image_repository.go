package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

const collectionImages = "images"

// ImageRepository implements ports.ImageRepository using MongoDB.
type ImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: db.Collection(collectionImages)}
}

type imageDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	URL         string             `bson:"url"`
	Description string             `bson:"description,omitempty"`
	// ProductID is the back-reference, stored as a hex string; empty for
	// orphaned images.
	ProductID string `bson:"product_id,omitempty"`
}

func (d imageDoc) toDomain() *domain.Image {
	return &domain.Image{
		ID:          d.ID.Hex(),
		URL:         d.URL,
		Description: d.Description,
		ProductID:   d.ProductID,
	}
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	doc := imageDoc{URL: img.URL, Description: img.Description, ProductID: img.ProductID}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	created := *img
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*domain.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrImageNotFound
	}

	var d imageDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find image: %w", err)
	}
	return d.toDomain(), nil
}

func (r *ImageRepository) FindAll(ctx context.Context) ([]*domain.Image, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *ImageRepository) FindByProduct(ctx context.Context, productID string) ([]*domain.Image, error) {
	return r.findMany(ctx, bson.M{"product_id": productID})
}

func (r *ImageRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Image, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	defer cur.Close(ctx)

	var images []*domain.Image
	for cur.Next(ctx) {
		var d imageDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		images = append(images, d.toDomain())
	}
	return images, cur.Err()
}

func (r *ImageRepository) Update(ctx context.Context, img *domain.Image) error {
	oid, err := primitive.ObjectIDFromHex(img.ID)
	if err != nil {
		return domain.ErrImageNotFound
	}

	update := bson.M{"$set": bson.M{
		"url":         img.URL,
		"description": img.Description,
		"product_id":  img.ProductID,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrImageNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

// EnsureIndexes creates the back-reference index used by FindByProduct.
func (r *ImageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "product_id", Value: 1}},
	})
	return err
}
