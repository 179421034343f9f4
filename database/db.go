package database

import (
	"context"
	"fmt"
	"time"

	"athletetech/config"
	"athletetech/utils"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// FirestoreClient is set when STORE_BACKEND is firestore.
var FirestoreClient *firestore.Client

// InitDB initializes the MongoDB connection.
func InitDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB successfully", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

// MongoDatabase returns the application database on the global client.
func MongoDatabase() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// InitFirestore opens a Firestore client on the already initialized Firebase app.
func InitFirestore(ctx context.Context) error {
	if utils.FirebaseApp == nil {
		return fmt.Errorf("firebase app is not initialized")
	}
	client, err := utils.FirebaseApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("failed to create Firestore client: %w", err)
	}
	FirestoreClient = client
	utils.GetLogger().Info("Connected to Firestore successfully")
	return nil
}

// Close releases whichever store clients were opened.
func Close(ctx context.Context) {
	logger := utils.GetLogger()
	if MongoClient != nil {
		if err := MongoClient.Disconnect(ctx); err != nil {
			logger.Warn("failed to disconnect MongoDB", zap.Error(err))
		}
	}
	if FirestoreClient != nil {
		if err := FirestoreClient.Close(); err != nil {
			logger.Warn("failed to close Firestore client", zap.Error(err))
		}
	}
}
