package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

const booksCollection = "books"

type MongoBookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *MongoBookRepository {
	return &MongoBookRepository{coll: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	Year      int                `bson:"year,omitempty"`
	CreatedBy string             `bson:"created_by"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoBookRepository) Insert(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := mongoBook{
		Title:     book.Title,
		Author:    book.Author,
		Year:      book.Year,
		CreatedBy: book.CreatedBy,
		CreatedAt: book.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert book: unexpected inserted id type %T", res.InsertedID)
	}

	created := *book
	created.ID = oid.Hex()
	return &created, nil
}

func (r *MongoBookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *MongoBookRepository) List(ctx context.Context) ([]domain.Book, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoBook
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]domain.Book, 0, len(docs))
	for _, mb := range docs {
		books = append(books, *mb.toDomain())
	}
	return books, nil
}

func (r *MongoBookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (mb mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Author:    mb.Author,
		Year:      mb.Year,
		CreatedBy: mb.CreatedBy,
		CreatedAt: unixToTime(mb.CreatedAt),
	}
}
