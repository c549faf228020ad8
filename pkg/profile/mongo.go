package profile

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	modorderrors "github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
)

// CollectionName is the MongoDB collection holding profiles.
const CollectionName = "profiles"

// MongoStore keeps profiles in MongoDB, one document per profile keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type profileDoc struct {
	Name      string    `bson:"_id"`
	Order     []mods.ID `bson:"order"`
	Disabled  []mods.ID `bson:"disabled"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and uses the profiles collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (*Profile, error) {
	if err := modorderrors.ValidateProfileName(name); err != nil {
		return nil, err
	}

	var doc profileDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, err
	}

	p := &Profile{Order: doc.Order, Disabled: doc.Disabled}
	p.normalize()
	return p, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, p *Profile) error {
	if err := modorderrors.ValidateProfileName(name); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	out := p.Clone()
	out.normalize()
	doc := profileDoc{
		Name:      name,
		Order:     out.Order,
		Disabled:  out.Disabled,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
