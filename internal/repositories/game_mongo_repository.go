package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"igames/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGameRepository reads and seeds the games collection.
type MongoGameRepository struct {
	coll *mongo.Collection
}

var _ GameStore = (*MongoGameRepository)(nil)

// NewMongoGameRepository creates a repository over db's games collection.
func NewMongoGameRepository(db *mongo.Database) *MongoGameRepository {
	return &MongoGameRepository{coll: db.Collection(GamesCollection)}
}

// nameFilter matches search as a literal, case-insensitive substring of name.
func nameFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}}
}

func decodeGames(ctx context.Context, cur *mongo.Cursor) ([]models.Game, error) {
	defer cur.Close(ctx)

	games := []models.Game{}
	for cur.Next(ctx) {
		var doc gameDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode game: %w", err)
		}
		games = append(games, doc.model())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

// Count returns the number of games matching search.
func (r *MongoGameRepository) Count(ctx context.Context, search string) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, nameFilter(search))
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return total, nil
}

// List returns one window of games matching search, ordered by name.
func (r *MongoGameRepository) List(ctx context.Context, search string, offset, limit int) ([]models.Game, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, nameFilter(search), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return decodeGames(ctx, cur)
}

// GetByID retrieves a game by its ObjectID hex string.
func (r *MongoGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc gameDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}
	game := doc.model()
	return &game, nil
}

// GetByIDs returns the games present among ids.
func (r *MongoGameRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Game, error) {
	oids, err := parseObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(oids) == 0 {
		return []models.Game{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get games by IDs: %w", err)
	}
	return decodeGames(ctx, cur)
}

// Sample draws up to size distinct games with the $sample stage.
func (r *MongoGameRepository) Sample(ctx context.Context, size int) ([]models.Game, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample games: %w", err)
	}
	return decodeGames(ctx, cur)
}

// CreateMany inserts games, generating ObjectIDs for games without one.
func (r *MongoGameRepository) CreateMany(ctx context.Context, games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(games))
	for i := range games {
		doc, err := newGameDocument(&games[i])
		if err != nil {
			return err
		}
		if doc.ID.IsZero() {
			doc.ID = primitive.NewObjectID()
		}
		games[i].ID = doc.ID.Hex()
		docs = append(docs, doc)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to import games: %w", err)
	}
	return nil
}

// DeleteAll removes every game document.
func (r *MongoGameRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete games: %w", err)
	}
	return res.DeletedCount, nil
}
