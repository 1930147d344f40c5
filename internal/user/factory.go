package user

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duccv/auth-service/pkg/database"
)

// NewStore builds the Store implementation matching the connected database
// backend.
func NewStore(db database.Database) (Store, error) {
	switch db.GetType() {
	case database.PostgreSQL:
		readPool, ok := db.GetReadConnection().(*pgxpool.Pool)
		if !ok {
			return nil, fmt.Errorf("unexpected read connection type for postgres")
		}
		writePool, ok := db.GetWriteConnection().(*pgxpool.Pool)
		if !ok {
			return nil, fmt.Errorf("unexpected write connection type for postgres")
		}
		return NewPostgresStore(readPool, writePool), nil

	case database.MongoDBNoSQL:
		mongoDB, err := database.GetMongoDatabase(db)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(mongoDB)

	default:
		return nil, fmt.Errorf("unsupported user store backend: %s", db.GetType())
	}
}
