package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geoexplorer/geoexplorer-api/internal/domain/entity"
	"github.com/geoexplorer/geoexplorer-api/internal/domain/repository"
)

// userDoc is the persisted shape of entity.User. Mapping by hand keeps the
// domain entity free of driver tags.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Password  string             `bson:"password"`
	Favorites []string           `bson:"favorites"`
	Version   int64              `bson:"version"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *userDoc) toEntity() *entity.User {
	favorites := d.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return &entity.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Password:  d.Password,
		Favorites: favorites,
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	doc := userDoc{
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Password:  u.Password,
		Favorites: []string{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	u.Favorites = []string{}
	u.Version = 0
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot match any document.
		return nil, repository.ErrNotFound
	}
	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// UpdateFavorites writes the favorites list conditional on the document
// still carrying the given version. A zero match with the user still present
// means a concurrent writer bumped the version first.
func (r *UserRepository) UpdateFavorites(ctx context.Context, id string, favorites []string, version int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	if favorites == nil {
		favorites = []string{}
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "version": version},
		bson.M{
			"$set": bson.M{"favorites": favorites, "updated_at": time.Now().UTC()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		exists, cErr := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if cErr != nil {
			return cErr
		}
		if exists == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
