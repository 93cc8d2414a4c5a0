package repositories

import (
	"context"
	"testing"

	"igames/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const gamesNS = "igames." + GamesCollection

func gameDoc(id primitive.ObjectID, name string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: name + " description"},
		{Key: "platforms", Value: bson.A{"PC"}},
		{Key: "releaseDate", Value: "2020-01-01"},
		{Key: "price", Value: 19.99},
		{Key: "metacriticRating", Value: 80.0},
		{Key: "esrbRating", Value: "Teen"},
		{Key: "genres", Value: bson.A{"Action"}},
		{Key: "images", Value: bson.A{"cover.jpg"}},
		{Key: "videos", Value: bson.A{"trailer.mp4"}},
	}
}

func mongoUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID().Hex(),
		Username: "gamer",
		Email:    "gamer@example.com",
		Password: "hash",
		Wishlist: []string{},
		Cart:     []string{},
	}
}

func TestMongoUserRepository(t *testing.T) {
	ctx := context.Background()
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: igames.users index: email_1",
		}))

		err := repo.Create(ctx, &models.User{Username: "gamer", Email: "gamer@example.com", Password: "hash"})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("create assigns an ObjectID", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Username: "gamer", Email: "gamer@example.com", Password: "hash"}
		require.NoError(mt, repo.Create(ctx, user))
		_, err := primitive.ObjectIDFromHex(user.ID)
		assert.NoError(mt, err)
	})

	mt.Run("update of a missing user", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		assert.ErrorIs(mt, repo.Update(ctx, mongoUser()), ErrNotFound)
	})

	mt.Run("update to a taken email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		assert.ErrorIs(mt, repo.Update(ctx, mongoUser()), ErrDuplicateKey)
	})

	mt.Run("update rewrites the document", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, repo.Update(ctx, mongoUser()))
	})

	mt.Run("lookup misses", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "igames."+UsersCollection, mtest.FirstBatch))

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(mt, err, ErrNotFound)

		_, err = repo.GetByID(ctx, "not-an-object-id")
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("delete of a missing user", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()), ErrNotFound)
	})
}

func TestMongoGameRepository(t *testing.T) {
	ctx := context.Background()
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by ids decodes the $in result", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNS, mtest.FirstBatch,
			gameDoc(first, "Hades"),
			gameDoc(second, "Celeste"),
		))

		games, err := repo.GetByIDs(ctx, []string{first.Hex(), second.Hex(), primitive.NewObjectID().Hex()})
		require.NoError(mt, err)
		require.Len(mt, games, 2)
		assert.Equal(mt, first.Hex(), games[0].ID)
		assert.Equal(mt, "Hades", games[0].Name)
		assert.Equal(mt, []string{"PC"}, games[0].Platforms)
		assert.Equal(mt, second.Hex(), games[1].ID)

		_, err = repo.GetByIDs(ctx, []string{"bogus"})
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("sample decodes the $sample result", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNS, mtest.FirstBatch,
			gameDoc(primitive.NewObjectID(), "Portal 2"),
			gameDoc(primitive.NewObjectID(), "Elden Ring"),
			gameDoc(primitive.NewObjectID(), "Stardew Valley"),
		))

		games, err := repo.Sample(ctx, 6)
		require.NoError(mt, err)
		assert.Len(mt, games, 3)
		for _, g := range games {
			assert.NotEmpty(mt, g.ID)
			assert.Equal(mt, "Teen", g.EsrbRating)
		}
	})

	mt.Run("count and list", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, gamesNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(2)}}),
			mtest.CreateCursorResponse(0, gamesNS, mtest.FirstBatch,
				gameDoc(primitive.NewObjectID(), "Hades"),
				gameDoc(primitive.NewObjectID(), "Hades II"),
			),
		)

		total, err := repo.Count(ctx, "hades")
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, total)

		games, err := repo.List(ctx, "hades", 0, 8)
		require.NoError(mt, err)
		assert.Len(mt, games, 2)
	})

	mt.Run("missing game", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete all reports the count", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 8}))

		n, err := repo.DeleteAll(ctx)
		require.NoError(mt, err)
		assert.EqualValues(mt, 8, n)
	})
}
