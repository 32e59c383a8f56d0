package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-backend/internal/domains/author"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/apperr"
)

// mongoRepository implements author.Repository against the authors
// collection. It also reads the books collection for the join-time
// enrichment and the delete guard, mirroring how the service would otherwise
// need a cross-domain dependency.
type mongoRepository struct {
	authors *mongo.Collection
	books   *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) author.Repository {
	return &mongoRepository{
		authors: db.Collection(database.AuthorsCollection),
		books:   db.Collection(database.BooksCollection),
	}
}

func (r *mongoRepository) Create(ctx context.Context, a *author.Author) error {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.authors.InsertOne(ctx, a)
	if err != nil {
		// The unique index on email is the authoritative guard; a race
		// past the application-level check lands here.
		if mongo.IsDuplicateKeyError(err) {
			return author.ErrDuplicateEmail
		}
		return apperr.Internalf(err, "failed to create author")
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	var a author.Author
	err := r.authors.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperr.Internalf(err, "failed to get author by id")
	}
	return &a, nil
}

func (r *mongoRepository) GetAll(ctx context.Context, filter author.Filter) ([]author.Author, int64, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Nationality != "" {
		query["nationality"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Nationality), Options: "i"}
	}
	if filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}

	order := 1
	if filter.Order == "desc" {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortBy, Value: order}}).
		SetSkip(filter.Skip)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.authors.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to query authors")
	}
	defer cursor.Close(ctx)

	var authors []author.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, 0, apperr.Internalf(err, "failed to decode authors")
	}

	total, err := r.authors.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to count authors")
	}

	return authors, total, nil
}

func (r *mongoRepository) Update(ctx context.Context, a *author.Author) error {
	res, err := r.authors.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return author.ErrDuplicateEmail
		}
		return apperr.Internalf(err, "failed to update author")
	}
	if res.MatchedCount == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.authors.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Internalf(err, "failed to delete author")
	}
	if res.DeletedCount == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *mongoRepository) ExistsByEmail(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	query := bson.M{"email": email}
	if excludeID != primitive.NilObjectID {
		query["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.authors.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.Internalf(err, "failed to check email uniqueness")
	}
	return count > 0, nil
}

func (r *mongoRepository) BooksByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]author.BookRef, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	opts := options.Find().SetProjection(bson.M{"authorId": 1, "title": 1})
	cursor, err := r.books.Find(ctx, bson.M{"authorId": bson.M{"$in": authorIDs}}, opts)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to query books for authors")
	}
	defer cursor.Close(ctx)

	var refs []author.BookRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, apperr.Internalf(err, "failed to decode book refs")
	}
	return refs, nil
}

func (r *mongoRepository) CountBooks(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	count, err := r.books.CountDocuments(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return 0, apperr.Internalf(err, "failed to count books")
	}
	return count, nil
}
