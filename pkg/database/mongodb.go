// mongodb.go - MongoDB Database Implementation with Driver v2
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/duccv/auth-service/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// MongoDB implements the Database interface for MongoDB Driver v2.
type MongoDB struct {
	config   *config.MongoConfig
	client   *mongo.Client
	database *mongo.Database
	logger   *zap.Logger
}

func NewMongoDB(config *config.MongoConfig) *MongoDB {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30
	}
	return &MongoDB{
		config: config,
		logger: zap.L(),
	}
}

func (m *MongoDB) Connect() error {
	m.logger.Info("Starting MongoDB connection",
		zap.String("database", m.config.Database),
		zap.String("auth_source", m.config.AuthSource),
		zap.Int("connect_timeout_seconds", m.config.ConnectTimeout))

	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(m.config.ConnectTimeout)*time.Second,
	)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.config.URI).
		SetConnectTimeout(time.Duration(m.config.ConnectTimeout) * time.Second)

	if m.config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(m.config.MaxPoolSize)
	}
	if m.config.MinPoolSize > 0 {
		opts.SetMinPoolSize(m.config.MinPoolSize)
	}
	if m.config.Username != "" {
		opts.SetAuth(options.Credential{
			Username:   m.config.Username,
			Password:   m.config.Password,
			AuthSource: m.config.AuthSource,
		})
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		m.logger.Error("Failed to create MongoDB client", zap.Error(err))
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		m.logger.Error("Failed to ping MongoDB", zap.Error(err))
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.database = client.Database(m.config.Database)

	m.logger.Info("Successfully connected to MongoDB",
		zap.String("database", m.config.Database))
	return nil
}

func (m *MongoDB) Ping() error {
	if m.client == nil {
		return fmt.Errorf("MongoDB client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) GetReadConnection() any {
	return m.database
}

func (m *MongoDB) GetWriteConnection() any {
	return m.database
}

func (m *MongoDB) GetType() DatabaseType {
	return MongoDBNoSQL
}

func (m *MongoDB) IsConnected() bool {
	return m.client != nil
}

func (m *MongoDB) HealthCheck() map[string]error {
	result := make(map[string]error)

	if m.client == nil {
		result["client"] = fmt.Errorf("MongoDB client not initialized")
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result["client"] = m.client.Ping(ctx, readpref.Primary())
	return result
}

func (m *MongoDB) Close() error {
	if m.client == nil {
		return nil
	}

	m.logger.Info("Closing MongoDB connection")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB client: %w", err)
	}

	m.client = nil
	m.database = nil
	return nil
}
