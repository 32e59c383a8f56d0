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
	"library-backend/internal/domains/book"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/apperr"
)

// mongoRepository implements book.Repository against the books collection,
// reading authors for the referential check and the join-time enrichment.
type mongoRepository struct {
	books   *mongo.Collection
	authors *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) book.Repository {
	return &mongoRepository{
		books:   db.Collection(database.BooksCollection),
		authors: db.Collection(database.AuthorsCollection),
	}
}

func (r *mongoRepository) Create(ctx context.Context, b *book.Book) error {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.books.InsertOne(ctx, b)
	if err != nil {
		// The unique index on isbn is the authoritative guard.
		if mongo.IsDuplicateKeyError(err) {
			return book.ErrDuplicateISBN
		}
		return apperr.Internalf(err, "failed to create book")
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	var b book.Book
	err := r.books.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperr.Internalf(err, "failed to get book by id")
	}
	return &b, nil
}

func (r *mongoRepository) GetAll(ctx context.Context, filter book.Filter) ([]book.Book, int64, error) {
	query := bson.M{}
	if filter.Genre != "" {
		query["genre"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Genre), Options: "i"}
	}
	if filter.AuthorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.AuthorID)
		if err != nil {
			// An unparseable author filter can never match anything.
			return nil, 0, nil
		}
		query["authorId"] = oid
	}
	if filter.Availability != nil {
		query["availability"] = *filter.Availability
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

	cursor, err := r.books.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to query books")
	}
	defer cursor.Close(ctx)

	var books []book.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, 0, apperr.Internalf(err, "failed to decode books")
	}

	total, err := r.books.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to count books")
	}

	return books, total, nil
}

func (r *mongoRepository) Update(ctx context.Context, b *book.Book) error {
	res, err := r.books.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return book.ErrDuplicateISBN
		}
		return apperr.Internalf(err, "failed to update book")
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.books.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Internalf(err, "failed to delete book")
	}
	if res.DeletedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *mongoRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID primitive.ObjectID) (bool, error) {
	query := bson.M{"isbn": isbn}
	if excludeID != primitive.NilObjectID {
		query["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.books.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.Internalf(err, "failed to check isbn uniqueness")
	}
	return count > 0, nil
}

func (r *mongoRepository) AuthorExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.authors.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.Internalf(err, "failed to check author existence")
	}
	return count > 0, nil
}

func (r *mongoRepository) AuthorsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]author.Author, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]author.Author{}, nil
	}

	cursor, err := r.authors.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Internalf(err, "failed to query authors for books")
	}
	defer cursor.Close(ctx)

	var authors []author.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, apperr.Internalf(err, "failed to decode authors")
	}

	byID := make(map[primitive.ObjectID]author.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	return byID, nil
}

func (r *mongoRepository) MarkBorrowed(ctx context.Context, id primitive.ObjectID, lending book.Lending) (*book.Book, error) {
	update := bson.M{
		"$set": bson.M{
			"availability":  false,
			"borrowedBy":    lending.BorrowedBy,
			"borrowedDate":  lending.BorrowedDate,
			"returnDueDate": lending.ReturnDueDate,
			"updatedAt":     time.Now().UTC(),
		},
	}
	return r.transition(ctx, bson.M{"_id": id, "availability": true}, update, id)
}

func (r *mongoRepository) MarkReturned(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	update := bson.M{
		"$set": bson.M{
			"availability": true,
			"updatedAt":    time.Now().UTC(),
		},
		"$unset": bson.M{
			"borrowedBy":    "",
			"borrowedDate":  "",
			"returnDueDate": "",
		},
	}
	return r.transition(ctx, bson.M{"_id": id, "availability": false}, update, id)
}

// transition applies a lending update whose filter encodes the required
// precondition state. A miss is disambiguated with a plain lookup: gone means
// NotFound, present means wrong state.
func (r *mongoRepository) transition(ctx context.Context, filter, update bson.M, id primitive.ObjectID) (*book.Book, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated book.Book
	err := r.books.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Internalf(err, "failed to update lending state")
	}

	count, countErr := r.books.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if countErr != nil {
		return nil, apperr.Internalf(countErr, "failed to check book existence")
	}
	if count == 0 {
		return nil, book.ErrBookNotFound
	}
	return nil, book.ErrLendingStateMismatch
}
