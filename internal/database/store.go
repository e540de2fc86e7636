package database

import (
    "context"
    "fmt"
    "time"

    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/config"
    "github.com/iliyamo/property-booking/internal/repository"
    "github.com/iliyamo/property-booking/internal/repository/memstore"
    "github.com/iliyamo/property-booking/internal/repository/mongostore"
)

// OpenStore connects the backend selected by cfg.StoreDriver and
// prepares its schema: indexes for MongoDB, migrations for MySQL.
func OpenStore(cfg config.Config) (*repository.Store, error) {
    switch cfg.StoreDriver {
    case config.StoreMongo:
        db, err := OpenMongo(cfg.MongoURI, cfg.MongoDB)
        if err != nil {
            return nil, fmt.Errorf("mongo connect: %w", err)
        }
        ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
        defer cancel()
        if err := mongostore.EnsureIndexes(ctx, db); err != nil {
            _ = db.Client().Disconnect(context.Background())
            return nil, fmt.Errorf("mongo indexes: %w", err)
        }
        log.Infof("store: mongo db=%s", cfg.MongoDB)
        return mongostore.New(db), nil

    case config.StoreMySQL:
        db, err := OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
        if err != nil {
            return nil, fmt.Errorf("mysql connect: %w", err)
        }
        if err := MigrateMySQL(db); err != nil {
            db.Close()
            return nil, err
        }
        log.Infof("store: mysql db=%s", cfg.DBName)
        return repository.NewMySQLStore(db), nil

    case config.StoreMemory:
        log.Warn("store: memory (data is lost on restart)")
        return memstore.New(), nil
    }
    return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
