package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"passphrasex/internal/domain"
)

const (
	usersCollection     = "users"
	passwordsCollection = "passwords"

	pingTimeout = 5 * time.Second
)

// userDoc is a registered identity.
type userDoc struct {
	ID        domain.Identity `bson:"_id"`
	CreatedAt time.Time       `bson:"created_at"`
}

// Mongo stores users and credentials in two MongoDB collections. Credential
// documents use the credential id as _id.
type Mongo struct {
	client    *mongo.Client
	users     *mongo.Collection
	passwords *mongo.Collection
}

// NewMongo connects to uri, verifies the connection and ensures indexes on
// database dbName.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	// Verify connection quickly
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := cli.Ping(pctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, err
	}

	db := cli.Database(dbName)
	m := &Mongo{
		client:    cli,
		users:     db.Collection(usersCollection),
		passwords: db.Collection(passwordsCollection),
	}
	_, err = m.passwords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "site", Value: 1}},
	})
	if err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return m, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// CreateUser registers id with no credentials. It fails with
// domain.ErrUserAlreadyExists if id is known.
func (m *Mongo) CreateUser(ctx context.Context, id domain.Identity) error {
	_, err := m.users.InsertOne(ctx, userDoc{ID: id, CreatedAt: time.Now().UTC()})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserAlreadyExists
	}
	return wrap("create user", err)
}

// CreateCredential stores c under its owner. It fails with
// domain.ErrUserNotFound for an unknown owner and
// domain.ErrCredentialAlreadyExists for a duplicate id.
func (m *Mongo) CreateCredential(ctx context.Context, c domain.Credential) error {
	if err := m.requireUser(ctx, c.OwnerID); err != nil {
		return err
	}
	_, err := m.passwords.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrCredentialAlreadyExists
	}
	return wrap("create credential", err)
}

// ListCredentials returns owner's credentials ordered by id.
func (m *Mongo) ListCredentials(ctx context.Context, owner domain.Identity) ([]domain.Credential, error) {
	if err := m.requireUser(ctx, owner); err != nil {
		return nil, err
	}
	cur, err := m.passwords.Find(ctx, bson.M{"user_id": owner}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, wrap("list credentials", err)
	}
	defer cur.Close(ctx)

	out := []domain.Credential{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrap("decode credentials", err)
	}
	return out, nil
}

// UpdateCredential replaces the password of owner's credential id, or
// fails with domain.ErrCredentialNotFound.
func (m *Mongo) UpdateCredential(ctx context.Context, owner domain.Identity, id domain.CredentialID, password string) error {
	res, err := m.passwords.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": owner},
		bson.M{"$set": bson.M{"password": password}},
	)
	if err != nil {
		return wrap("update credential", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

// DeleteCredential removes owner's credential id, or fails with
// domain.ErrCredentialNotFound.
func (m *Mongo) DeleteCredential(ctx context.Context, owner domain.Identity, id domain.CredentialID) error {
	res, err := m.passwords.DeleteOne(ctx, bson.M{"_id": id, "user_id": owner})
	if err != nil {
		return wrap("delete credential", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

func (m *Mongo) requireUser(ctx context.Context, id domain.Identity) error {
	n, err := m.users.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return wrap("find user", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

var _ domain.RemoteStore = (*Mongo)(nil)
