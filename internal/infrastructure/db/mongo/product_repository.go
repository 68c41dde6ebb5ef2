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

const collectionProducts = "products"

// ProductRepository implements ports.ProductRepository using MongoDB.
// Mutations that touch a product together with image rows run inside a
// session transaction so partial application is never observable.
type ProductRepository struct {
	db     *mongo.Database
	coll   *mongo.Collection
	images *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		db:     db,
		coll:   db.Collection(collectionProducts),
		images: db.Collection(collectionImages),
	}
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	CategoryID  string             `bson:"category_id"`
	MainImageID string             `bson:"main_image_id"`
	CreatedAt   int64              `bson:"created_at"`
}

func (d productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		CategoryID:  d.CategoryID,
		MainImageID: d.MainImageID,
		CreatedAt:   unixToTime(d.CreatedAt),
	}
}

func toProductDoc(p *domain.Product) productDoc {
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CategoryID:  p.CategoryID,
		MainImageID: p.MainImageID,
		CreatedAt:   p.CreatedAt.Unix(),
	}
}

// Create persists the product and its main image as one unit. The image is
// inserted first so the product document can reference it.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product, mainImage *domain.Image) (*domain.Product, error) {
	var created *domain.Product

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		imgDoc := imageDoc{
			URL:         mainImage.URL,
			Description: mainImage.Description,
			ProductID:   mainImage.ProductID,
		}
		imgRes, err := r.images.InsertOne(sc, imgDoc)
		if err != nil {
			return fmt.Errorf("insert main image: %w", err)
		}

		doc := toProductDoc(p)
		doc.MainImageID = imgRes.InsertedID.(primitive.ObjectID).Hex()

		res, err := r.coll.InsertOne(sc, doc)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}

		out := *p
		out.ID = res.InsertedID.(primitive.ObjectID).Hex()
		out.MainImageID = doc.MainImageID
		created = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var d productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return d.toDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{"category_id": categoryID})
}

func (r *ProductRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	for cur.Next(ctx) {
		var d productDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, d.toDomain())
	}
	return products, cur.Err()
}

// Update persists product changes. A non-nil replacementImage is inserted
// and becomes the main image; the previous main image row keeps existing,
// no longer referenced by the product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product, replacementImage *domain.Image) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		mainImageID := p.MainImageID
		if replacementImage != nil {
			imgDoc := imageDoc{
				URL:         replacementImage.URL,
				Description: replacementImage.Description,
				ProductID:   replacementImage.ProductID,
			}
			imgRes, err := r.images.InsertOne(sc, imgDoc)
			if err != nil {
				return fmt.Errorf("insert replacement image: %w", err)
			}
			mainImageID = imgRes.InsertedID.(primitive.ObjectID).Hex()
		}

		update := bson.M{"$set": bson.M{
			"name":          p.Name,
			"description":   p.Description,
			"price":         p.Price,
			"quantity":      p.Quantity,
			"category_id":   p.CategoryID,
			"main_image_id": mainImageID,
		}}

		res, err := r.coll.UpdateOne(sc, bson.M{"_id": oid}, update)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrProductNotFound
		}

		p.MainImageID = mainImageID
		return nil
	})
}

// ApplyDeletion executes a deletion plan atomically: removes the listed
// image rows, clears the back-reference on detached images, and deletes the
// product.
func (r *ProductRepository) ApplyDeletion(ctx context.Context, plan domain.ProductDeletionPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ProductID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if ids := toObjectIDs(plan.RemoveImageIDs); len(ids) > 0 {
			if _, err := r.images.DeleteMany(sc, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
				return fmt.Errorf("remove images: %w", err)
			}
		}

		if ids := toObjectIDs(plan.DetachImageIDs); len(ids) > 0 {
			_, err := r.images.UpdateMany(sc,
				bson.M{"_id": bson.M{"$in": ids}},
				bson.M{"$unset": bson.M{"product_id": ""}},
			)
			if err != nil {
				return fmt.Errorf("detach images: %w", err)
			}
		}

		res, err := r.coll.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

// EnsureIndexes creates the category listing index.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category_id", Value: 1}},
	})
	return err
}

func (r *ProductRepository) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func toObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
