package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"f3region/site-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping against the primary.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connect can succeed while the server is unresponsive.
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// Connector owns the process-wide client. It connects on first use and hands
// the same database handle to every later caller; concurrent first callers
// wait for a single connection attempt. A failed attempt is not cached, so
// the next caller retries.
type Connector struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

// NewConnector returns a Connector for uri/dbName. Nothing is dialled yet.
func NewConnector(uri, dbName string) *Connector {
	return &Connector{uri: uri, dbName: dbName}
}

// Database returns the shared database handle, connecting if needed.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		client, err := ConnectDB(ctx, c.uri)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		slog.Info("mongodb connected", "database", c.dbName)
		c.client = client
	}
	return c.client.Database(c.dbName), nil
}

// Connect calls Database up to attempts times, doubling the wait between
// tries from backoff. It gives up early when ctx is done.
func (c *Connector) Connect(ctx context.Context, attempts int, backoff time.Duration) (*mongo.Database, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := c.Database(ctx)
		if err == nil {
			return db, nil
		}
		lastErr = err
		if i == attempts {
			break
		}
		slog.Warn("mongodb not reachable, retrying", "attempt", i, "of", attempts, "wait", backoff.String(), "error", err)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w (last error: %w)", ctx.Err(), lastErr)
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

// connected reports whether a client is held.
func (c *Connector) connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

// Close disconnects the client if one was ever opened.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := DisconnectDB(c.client)
	c.client = nil
	return err
}

// mongoTransactor implements repository.Transactor on client sessions.
// Transactions need a replica set or sharded cluster.
type mongoTransactor struct {
	client *mongo.Client
}

// NewTransactor returns a Transactor bound to db's client.
func NewTransactor(db *mongo.Database) repository.Transactor {
	return &mongoTransactor{client: db.Client()}
}

// WithTransaction runs fn inside a session transaction. Repository calls
// made with the session context join it. The driver retries fn on transient
// transaction errors, so fn must be safe to run more than once.
func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// objectID parses an opaque id. Anything that is not a valid hex ObjectID
// cannot name a stored document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// EnsureIndexes creates every index the repositories rely on. Call once at
// startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureLocationIndexes(ctx, db.Collection(locationCollectionName)); err != nil {
		return err
	}
	return EnsureWorkoutIndexes(ctx, db.Collection(workoutCollectionName))
}
