package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/KENZY004/contact-management/internal/model"
)

// contactDoc is the document shape stored in the contacts collection.
type contactDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone"`
	Message   string        `bson:"message,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d contactDoc) toModel() model.Contact {
	return model.Contact{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

// MongoRepository is the document-store implementation of
// ContactRepository.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ ContactRepository = (*MongoRepository)(nil)

// NewMongoRepository connects to the MongoDB instance at uri, verifies
// the connection, and ensures the unique index on email. A connection
// failure here is fatal to server startup.
func NewMongoRepository(ctx context.Context, uri, database string) (*MongoRepository, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	collection := client.Database(database).Collection("contacts")

	// The unique index backs up the API's duplicate pre-check, closing
	// the window between check and write.
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create email index: %w", err)
	}

	return &MongoRepository{client: client, collection: collection}, nil
}

// Close disconnects from the database.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Ping verifies the database connection.
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// List returns all contacts, newest first.
func (r *MongoRepository) List(ctx context.Context) ([]model.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []contactDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	contacts := make([]model.Contact, 0, len(docs))
	for _, doc := range docs {
		contacts = append(contacts, doc.toModel())
	}
	return contacts, nil
}

// FindByEmail returns the contact with the given normalized email.
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (model.Contact, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByEmailExcluding returns the contact with the given normalized
// email, ignoring the contact with id excludeID.
func (r *MongoRepository) FindByEmailExcluding(ctx context.Context, email, excludeID string) (model.Contact, error) {
	oid, err := bson.ObjectIDFromHex(excludeID)
	if err != nil {
		return model.Contact{}, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": oid}})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (model.Contact, error) {
	var doc contactDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return doc.toModel(), nil
}

// Create inserts a new contact with a fresh ObjectID and the current
// timestamp.
func (r *MongoRepository) Create(ctx context.Context, fields model.Fields) (model.Contact, error) {
	doc := contactDoc{
		ID:        bson.NewObjectID(),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Message:   fields.Message,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Contact{}, ErrDuplicateEmail
		}
		return model.Contact{}, err
	}
	return doc.toModel(), nil
}

// UpdateByID replaces the four mutable fields and returns the updated
// document.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, fields model.Fields) (model.Contact, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Contact{}, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":    fields.Name,
		"email":   fields.Email,
		"phone":   fields.Phone,
		"message": fields.Message,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc contactDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Contact{}, ErrDuplicateEmail
		}
		return model.Contact{}, err
	}
	return doc.toModel(), nil
}

// DeleteByID removes the contact and returns the removed document.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (model.Contact, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Contact{}, ErrNotFound
	}
	var doc contactDoc
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return doc.toModel(), nil
}
