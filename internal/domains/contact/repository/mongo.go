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

	"library-backend/internal/domains/contact"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/apperr"
)

type mongoRepository struct {
	contacts *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) contact.Repository {
	return &mongoRepository{
		contacts: db.Collection(database.ContactsCollection),
	}
}

func (r *mongoRepository) Create(ctx context.Context, c *contact.Contact) error {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.contacts.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return contact.ErrDuplicateEmail
		}
		return apperr.Internalf(err, "failed to create contact")
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*contact.Contact, error) {
	var c contact.Contact
	err := r.contacts.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contact.ErrContactNotFound
		}
		return nil, apperr.Internalf(err, "failed to get contact by id")
	}
	return &c, nil
}

func (r *mongoRepository) GetAll(ctx context.Context, filter contact.Filter) ([]contact.Contact, int64, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Favorite != nil {
		query["favorite"] = *filter.Favorite
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

	cursor, err := r.contacts.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to query contacts")
	}
	defer cursor.Close(ctx)

	var contacts []contact.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, apperr.Internalf(err, "failed to decode contacts")
	}

	total, err := r.contacts.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to count contacts")
	}

	return contacts, total, nil
}

func (r *mongoRepository) Update(ctx context.Context, c *contact.Contact) error {
	res, err := r.contacts.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return contact.ErrDuplicateEmail
		}
		return apperr.Internalf(err, "failed to update contact")
	}
	if res.MatchedCount == 0 {
		return contact.ErrContactNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.contacts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Internalf(err, "failed to delete contact")
	}
	if res.DeletedCount == 0 {
		return contact.ErrContactNotFound
	}
	return nil
}

func (r *mongoRepository) ExistsByEmail(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	query := bson.M{"email": email}
	if excludeID != primitive.NilObjectID {
		query["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.contacts.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.Internalf(err, "failed to check email uniqueness")
	}
	return count > 0, nil
}
