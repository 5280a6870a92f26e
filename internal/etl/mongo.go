package etl

import (
	"context"
	"fmt"

	"github.com/BartekS5/personbatch/pkg/models"
	"github.com/BartekS5/personbatch/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	countersCollection   = "job_run_counters"
	executionsCollection = "job_executions"
)

// MongoJobRepository persists execution history in MongoDB. Run
// identifiers come from a per-job counter document incremented atomically.
type MongoJobRepository struct {
	Client   *mongo.Client
	Database string
}

func NewMongoJobRepository(client *mongo.Client, database string) *MongoJobRepository {
	return &MongoJobRepository{Client: client, Database: database}
}

func (m *MongoJobRepository) collection(name string) *mongo.Collection {
	return m.Client.Database(m.Database).Collection(name)
}

func (m *MongoJobRepository) NextRunID(ctx context.Context, jobName string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := m.collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": jobName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("incrementing run counter: %w", err)
	}

	runID, err := utils.ConvertToInt64(doc["seq"])
	if err != nil {
		return 0, fmt.Errorf("decoding run counter: %w", err)
	}
	return runID, nil
}

func (m *MongoJobRepository) SaveJobExecution(ctx context.Context, exec *models.JobExecution) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection(executionsCollection).ReplaceOne(ctx, bson.M{"_id": exec.ID}, exec, opts); err != nil {
		return fmt.Errorf("upserting execution %s: %w", exec.ID, err)
	}
	return nil
}

func (m *MongoJobRepository) FindJobExecutions(ctx context.Context, jobName string, limit int) ([]*models.JobExecution, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "runId", Value: -1}})
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cursor, err := m.collection(executionsCollection).Find(ctx, bson.M{"jobName": jobName}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*models.JobExecution
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding executions: %w", err)
	}
	return results, nil
}
