package services

import (
	"context"
	"crypto/tls"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens and pings a shared database handle used by all
// Mongo-backed services. Returns nil without error when uri is empty, which
// leaves every service in the "store not initialized" state.
func ConnectMongo(ctx context.Context, mongoURI, dbName string) (*mongo.Database, error) {
	if mongoURI == "" || dbName == "" {
		return nil, nil
	}

	// Atlas occasionally fails TLS negotiation in some environments unless we force TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(dbName), nil
}
