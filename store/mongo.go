package store

import (
	"context"
	"fmt"

	"github.com/hyperlane-deploy/deploy-api/config"
	"github.com/hyperlane-deploy/deploy-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionsCollection is the name of the collection submission records are stored in
const SubmissionsCollection = "submissions"

// ClientOptions builds MongoDB connection options from the configuration
func ClientOptions(cfg *config.Config) (*options.ClientOptions, error) {
	opts := options.Client()
	opts.SetAuth(options.Credential{
		Username: cfg.DbUser,
		Password: cfg.DbPassword,
	})
	opts.SetHosts([]string{
		fmt.Sprintf("%s:%d", cfg.DbHost, cfg.DbPort),
	})

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate database connection options: %s",
			err.Error())
	}

	return opts, nil
}

// Connect opens and tests a connection to the configured database
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	opts, err := ClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %s", err.Error())
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to test database connection: %s", err.Error())
	}

	return client.Database(cfg.DbName), nil
}

// SubmissionStore saves and lists submission records
type SubmissionStore struct {
	// Submissions is the submissions collection
	Submissions *mongo.Collection
}

// NewSubmissionStore creates a SubmissionStore backed by db
func NewSubmissionStore(db *mongo.Database) SubmissionStore {
	return SubmissionStore{
		Submissions: db.Collection(SubmissionsCollection),
	}
}

// RecordSubmission inserts record
func (s SubmissionStore) RecordSubmission(ctx context.Context,
	record models.SubmissionRecord) error {

	if _, err := s.Submissions.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert submission record: %s", err.Error())
	}

	return nil
}

// ListSubmissions returns the records of a warp route, newest first
func (s SubmissionStore) ListSubmissions(ctx context.Context,
	warpRouteID string) ([]models.SubmissionRecord, error) {

	cursor, err := s.Submissions.Find(ctx, bson.D{{Key: "warp_route_id", Value: warpRouteID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query submission records: %s", err.Error())
	}
	defer cursor.Close(ctx)

	records := []models.SubmissionRecord{}
	for cursor.Next(ctx) {
		record := models.SubmissionRecord{}
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode submission record: %s", err.Error())
		}
		records = append(records, record)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submission records: %s", err.Error())
	}

	return records, nil
}
