// Package mongomigrate runs database migrations against the MongoDB
// deployment targeted by a connection string.
package mongomigrate

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/errors/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb" // mongodb database driver for the migrate package
	_ "github.com/golang-migrate/migrate/v4/source/file"      // up/down script file source driver for the migrate package
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const pingTimeout = 10 * time.Second

type Client struct {
	databaseURL string
	client      *mongo.Client
}

// Connect connects to the MongoDB deployment behind databaseURL and returns
// a migration client.
func Connect(ctx context.Context, databaseURL string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(databaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "mongo.Connect()")
	}

	return &Client{
		databaseURL: databaseURL,
		client:      client,
	}, nil
}

// Ping verifies connectivity to the primary before any deployment step that
// depends on the database.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "mongo.Client.Ping()")
	}

	return nil
}

// MigrateUp will migrate all the way up, applying all up migrations from the
// sourceURL.
func (c *Client) MigrateUp(sourceURL string) error {
	m, err := migrate.New(sourceURL, c.databaseURL)
	if err != nil {
		return errors.Wrapf(err, "migrate.New(): fileURL=%s", sourceURL)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("migrate.Migrate.Close() error: source error: %v, database error: %v: %s", srcErr, dbErr, sourceURL)
		}
	}()

	if err := m.Up(); err != nil {
		return errors.Wrapf(err, "migrate.Migrate.Up(): %s", sourceURL)
	}

	return nil
}

// Drop removes everything in the database, including the migration state.
func (c *Client) Drop(sourceURL string) error {
	m, err := migrate.New(sourceURL, c.databaseURL)
	if err != nil {
		return errors.Wrapf(err, "migrate.New(): fileURL=%s", sourceURL)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("migrate.Migrate.Close() error: source error: %v, database error: %v: %s", srcErr, dbErr, sourceURL)
		}
	}()

	if err := m.Drop(); err != nil {
		return errors.Wrapf(err, "migrate.Migrate.Drop(): %s", sourceURL)
	}

	return nil
}

// Close disconnects the underlying mongo client.
func (c *Client) Close(ctx context.Context) {
	if err := c.client.Disconnect(ctx); err != nil {
		log.Printf("failed to disconnect mongo client: %v", err)
	}
}
