package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoOptions Mongo 连接参数
type MongoOptions struct {
	AppName        string
	ConnectTimeout time.Duration
}

// ConnectMongo 创建 Mongo 客户端
// 驱动在首次操作时才真正建连，这里只校验 URI；可达性由 PingMongo 检查
func ConnectMongo(uri string, opts MongoOptions) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri)
	if opts.AppName != "" {
		clientOpts.SetAppName(opts.AppName)
	}
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("创建 Mongo 客户端失败: %w", err)
	}
	return client, nil
}

// PingMongo 连通性检查
func PingMongo(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return fmt.Errorf("mongo client 未初始化")
	}
	return client.Ping(ctx, readpref.Primary())
}
