package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hitoshi/platemate/internal/model"
)

// SavedRecipesCollection は保存済みレシピを格納するコレクション名。
const SavedRecipesCollection = "savedrecipes"

// savedRecipeDocument はsavedrecipesコレクションのドキュメント表現。
type savedRecipeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	RecipeID  string             `bson:"recipeId"`
	Title     string             `bson:"title"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// MongoSavedRecipeRepo はMongoDBを使用した保存済みレシピリポジトリ。
type MongoSavedRecipeRepo struct {
	coll *mongo.Collection
}

// NewMongoSavedRecipeRepo はMongoSavedRecipeRepoを生成する。
func NewMongoSavedRecipeRepo(db *mongo.Database) *MongoSavedRecipeRepo {
	return &MongoSavedRecipeRepo{coll: db.Collection(SavedRecipesCollection)}
}

// Create は保存済みレシピを作成する。
func (r *MongoSavedRecipeRepo) Create(ctx context.Context, recipe *model.SavedRecipe) error {
	id, err := objectIDFor(recipe.ID)
	if err != nil {
		return err
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}

	_, err = r.coll.InsertOne(ctx, savedRecipeDocument{
		ID:        id,
		UserID:    recipe.UserID,
		RecipeID:  recipe.RecipeID,
		Title:     recipe.Title,
		CreatedAt: recipe.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert saved recipe: %w", err)
	}

	recipe.ID = id.Hex()
	return nil
}

// ListByUserID はユーザーの保存済みレシピを作成日時の昇順で返す。
func (r *MongoSavedRecipeRepo) ListByUserID(ctx context.Context, userID string) ([]*model.SavedRecipe, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	})

	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []savedRecipeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode saved recipes: %w", err)
	}

	recipes := make([]*model.SavedRecipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, &model.SavedRecipe{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			RecipeID:  doc.RecipeID,
			Title:     doc.Title,
			CreatedAt: doc.CreatedAt,
		})
	}

	return recipes, nil
}

// compile-time interface check
var _ SavedRecipeRepository = (*MongoSavedRecipeRepo)(nil)
