package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"campdir/internal/platform/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}

	// Verify connection
	if err = Client.Ping(ctx, nil); err != nil {
		log.Fatalf("Error pinging MongoDB: %v", err)
	}

	DB = Client.Database(config.AppConfig.MongoDB)
	fmt.Println("Successfully connected to MongoDB!")
}

// EnsureIndexes creates the unique and geospatial indexes the queries rely on.
func EnsureIndexes(ctx context.Context) error {
	_, err := DB.Collection("bootcamps").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	})
	if err != nil {
		return fmt.Errorf("bootcamp indexes: %w", err)
	}

	_, err = DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	_, err = DB.Collection("courses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bootcamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("course indexes: %w", err)
	}
	return nil
}

func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
		fmt.Println("Database connection closed.")
	}
}
