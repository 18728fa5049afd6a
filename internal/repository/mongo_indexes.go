package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes はMongoDBのコレクションに必要なインデックスを作成する。
// PostgreSQLのマイグレーションに相当し、何度実行しても結果は変わらない。
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = db.Collection(SavedRecipesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("savedrecipes_user_created"),
	})
	if err != nil {
		return fmt.Errorf("failed to create savedrecipes user index: %w", err)
	}

	return nil
}
