package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hitoshi/platemate/internal/model"
)

// UsersCollection はユーザーを格納するコレクション名。
const UsersCollection = "users"

// userDocument はusersコレクションのドキュメント表現。
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// MongoUserRepo はMongoDBを使用したユーザーリポジトリ。
// emailの一意インデックスはEnsureMongoIndexesで作成する。
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo はMongoUserRepoを生成する。
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(UsersCollection)}
}

// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &model.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// Create はユーザーを作成する。
// emailの一意インデックスに違反した場合はErrDuplicateEmailを返す。
func (r *MongoUserRepo) Create(ctx context.Context, user *model.User) error {
	id, err := objectIDFor(user.ID)
	if err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err = r.coll.InsertOne(ctx, userDocument{
		ID:           id,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = id.Hex()
	return nil
}

// objectIDFor は既存IDをObjectIDに変換する。空の場合は新規に採番する。
func objectIDFor(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NewObjectID(), nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id %q: %w", id, err)
	}
	return oid, nil
}

// compile-time interface check
var _ UserRepository = (*MongoUserRepo)(nil)
