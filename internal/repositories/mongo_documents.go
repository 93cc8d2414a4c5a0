package repositories

import (
	"fmt"
	"time"

	"igames/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names, matching the collections the catalog dataset is loaded into.
const (
	UsersCollection = "users"
	GamesCollection = "games"
)

type userDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Username  string               `bson:"username"`
	Email     string               `bson:"email"`
	Password  string               `bson:"password"`
	Wishlist  []primitive.ObjectID `bson:"wishlist"`
	Cart      []primitive.ObjectID `bson:"cart"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type gameDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description"`
	Platforms        []string           `bson:"platforms"`
	ReleaseDate      string             `bson:"releaseDate"`
	Price            float64            `bson:"price"`
	MetacriticRating float64            `bson:"metacriticRating"`
	EsrbRating       string             `bson:"esrbRating"`
	Genres           []string           `bson:"genres"`
	Images           []string           `bson:"images"`
	Videos           []string           `bson:"videos"`
}

// parseObjectID converts a hex id, mapping format errors to ErrInvalidID.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, ErrInvalidID)
	}
	return oid, nil
}

func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseObjectID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

func newUserDocument(u *models.User) (*userDocument, error) {
	doc := &userDocument{
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	var err error
	if u.ID != "" {
		if doc.ID, err = parseObjectID(u.ID); err != nil {
			return nil, err
		}
	}
	if doc.Wishlist, err = parseObjectIDs(u.Wishlist); err != nil {
		return nil, err
	}
	if doc.Cart, err = parseObjectIDs(u.Cart); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *userDocument) model() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		Wishlist:  hexIDs(d.Wishlist),
		Cart:      hexIDs(d.Cart),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func newGameDocument(g *models.Game) (*gameDocument, error) {
	doc := &gameDocument{
		Name:             g.Name,
		Description:      g.Description,
		Platforms:        g.Platforms,
		ReleaseDate:      g.ReleaseDate,
		Price:            g.Price,
		MetacriticRating: g.MetacriticRating,
		EsrbRating:       g.EsrbRating,
		Genres:           g.Genres,
		Images:           g.Images,
		Videos:           g.Videos,
	}
	if g.ID != "" {
		oid, err := parseObjectID(g.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *gameDocument) model() models.Game {
	return models.Game{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Description:      d.Description,
		Platforms:        d.Platforms,
		ReleaseDate:      d.ReleaseDate,
		Price:            d.Price,
		MetacriticRating: d.MetacriticRating,
		EsrbRating:       d.EsrbRating,
		Genres:           d.Genres,
		Images:           d.Images,
		Videos:           d.Videos,
	}
}
