package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names, one per entity kind.
const (
	ColUsers    = "user"
	ColProjects = "project"
	ColPayments = "payment"
	ColMessages = "message"
)

const maxListedCollections = 10

// Mongo is a connected database handle. A nil *Mongo stands for a store that
// was never initialized.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect builds a client for uri without touching the network. The driver
// dials lazily and keeps reconnecting, so a server that is down now is used
// once it comes back. Only a malformed uri fails here.
func Connect(uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(5 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// NewMongo connects to uri and fails unless the server answers a ping.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	m, err := Connect(uri, dbName)
	if err != nil {
		return nil, err
	}
	if err := m.Ping(ctx); err != nil {
		_ = m.Close(context.Background())
		return nil, err
	}
	return m, nil
}

// Ping checks that the server is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil {
		return fmt.Errorf("ping mongo: not initialized")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := m.client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Database returns the selected database, or nil when not initialized.
func (m *Mongo) Database() *mongo.Database {
	if m == nil {
		return nil
	}
	return m.db
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the listing indexes. When uniqueEmails is set the
// email index on users is unique, which turns a concurrent duplicate
// registration into a duplicate-key error instead of a second user.
func (m *Mongo) EnsureIndexes(ctx context.Context, uniqueEmails bool) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, uniqueEmails},
		{ColUsers, bson.D{{Key: "role", Value: 1}}, false},
		{ColUsers, bson.D{{Key: "created_at", Value: -1}}, false},

		{ColProjects, bson.D{{Key: "studentId", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColProjects, bson.D{{Key: "created_at", Value: -1}}, false},

		{ColPayments, bson.D{{Key: "studentId", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColPayments, bson.D{{Key: "created_at", Value: -1}}, false},

		{ColMessages, bson.D{{Key: "fromUserId", Value: 1}}, false},
		{ColMessages, bson.D{{Key: "toUserId", Value: 1}}, false},
		{ColMessages, bson.D{{Key: "created_at", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := m.db.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}

// Status describes store reachability for the diagnostics endpoint.
type Status struct {
	Initialized bool
	Connected   bool
	Collections []string
	Error       string
}

// Status probes the store without failing. Errors are reported in the result.
func (m *Mongo) Status(ctx context.Context) Status {
	if m == nil || m.db == nil {
		return Status{Collections: []string{}}
	}

	st := Status{Initialized: true, Collections: []string{}}
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		log.Printf("WARNING: list collections: %v", err)
		st.Error = truncate(err.Error(), 80)
		return st
	}
	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	st.Connected = true
	st.Collections = names
	return st
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
