package database

import (
	"fmt"
	"log"

	"github.com/duccv/auth-service/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type DatabaseType string

const (
	PostgreSQL   DatabaseType = "postgres"
	MongoDBNoSQL DatabaseType = "mongodb"
)

type Database interface {
	Connect() error
	Close() error
	Ping() error
	GetReadConnection() any
	GetWriteConnection() any
	GetType() DatabaseType
	IsConnected() bool
	HealthCheck() map[string]error
}

// DatabaseFactory creates and tracks database instances by name.
type DatabaseFactory struct {
	databases map[string]Database
}

func NewDatabaseFactory() *DatabaseFactory {
	return &DatabaseFactory{
		databases: make(map[string]Database),
	}
}

// CreateDatabase builds the backend selected by config.Type and connects it.
func (f *DatabaseFactory) CreateDatabase(
	name string,
	config *config.DatabaseConfig,
) (Database, error) {
	var db Database

	switch DatabaseType(config.Type) {
	case PostgreSQL:
		db = NewPostgresDB(&config.PostgresConfig)
	case MongoDBNoSQL:
		db = NewMongoDB(&config.MongoConfig)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err := db.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Type, err)
	}

	f.databases[name] = db
	return db, nil
}

func (f *DatabaseFactory) GetDatabase(name string) (Database, error) {
	db, exists := f.databases[name]
	if !exists {
		return nil, fmt.Errorf("database '%s' not found", name)
	}
	return db, nil
}

// CloseAll closes every tracked database connection.
func (f *DatabaseFactory) CloseAll() error {
	for name, db := range f.databases {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database %s: %v", name, err)
		}
	}
	f.databases = make(map[string]Database)
	return nil
}

// HealthCheck reports the health of every tracked database connection.
func (f *DatabaseFactory) HealthCheck() map[string]map[string]error {
	result := make(map[string]map[string]error)
	for name, db := range f.databases {
		result[name] = db.HealthCheck()
	}
	return result
}

// GetMongoDatabase unwraps the mongo database handle from a Database instance.
func GetMongoDatabase(db Database) (*mongo.Database, error) {
	if db.GetType() != MongoDBNoSQL {
		return nil, fmt.Errorf("database is not MongoDB: %s", db.GetType())
	}
	mongoDB, ok := db.GetWriteConnection().(*mongo.Database)
	if !ok {
		return nil, fmt.Errorf("unexpected connection type for MongoDB")
	}
	return mongoDB, nil
}
