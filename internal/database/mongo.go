package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		fmt.Println("Missing env keys")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	DB = client.Database(os.Getenv("DB_NAME"))

	fmt.Println("Connected to DB successfully")
	return nil
}

func Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return Client.Disconnect(ctx)
}

func GetCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates the indexes the application relies on. The unique
// compound index on feedback is the no-double-voting contract: even two
// concurrent submits for the same (student, faculty, subject) cannot both
// be inserted.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := GetCollection("feedback").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "studentId", Value: 1},
			{Key: "facultyId", Value: 1},
			{Key: "subject", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = GetCollection("students").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "registerNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = GetCollection("faculties").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "facultyId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// Mapping tuples are deliberately not unique; duplicate assignments are
	// possible and double-count in reports until product clarifies the rule.
	_, err = GetCollection("mappings").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "facultyId", Value: 1},
			{Key: "subject", Value: 1},
		},
	})
	if err != nil {
		return err
	}

	_, err = GetCollection("questions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}},
	})
	return err
}
