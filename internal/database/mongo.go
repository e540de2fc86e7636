package database

import (
    "context"
    "time"

    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
    "go.mongodb.org/mongo-driver/mongo/readpref"
)

// OpenMongo connects to MongoDB, verifies the connection against the
// primary and returns the named database.
func OpenMongo(uri, name string) (*mongo.Database, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    client, err := mongo.Connect(ctx, options.Client().
        ApplyURI(uri).
        SetMaxPoolSize(50).
        SetServerSelectionTimeout(5*time.Second))
    if err != nil {
        return nil, err
    }
    if err := client.Ping(ctx, readpref.Primary()); err != nil {
        _ = client.Disconnect(context.Background())
        return nil, err
    }
    return client.Database(name), nil
}
