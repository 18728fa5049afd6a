package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoConnectTimeout はMongoDB接続確立時のタイムアウト。
const mongoConnectTimeout = 10 * time.Second

// MongoStore はMongoDBクライアントと使用するデータベースを保持する。
type MongoStore struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// OpenMongo はMongoDBに接続し、指定データベースのハンドルを返す。
// 接続後にPingを行い、到達できない場合はエラーを返す。
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{Client: client, Database: client.Database(dbName)}, nil
}

// PingContext はMongoDBへの疎通を確認する。
func (s *MongoStore) PingContext(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close はMongoDBとの接続を切断する。
func (s *MongoStore) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
