package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/saaaathvik/consultansease/internal/config"
	"github.com/saaaathvik/consultansease/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	Mongo  *mongo.Client
	DB     *mongo.Database
}

// NewApp connects to MongoDB with bounded retries and exponential backoff,
// verifying each attempt with a ping before handing the client out.
func NewApp(cfg *config.Config) (*App, error) {
	var (
		client  *mongo.Client
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		client, err = connect(cfg.MongoURL)
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	return &App{
		Config: cfg,
		Mongo:  client,
		DB:     client.Database(cfg.MongoDatabase),
	}, nil
}

func connect(mongoURL string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

func (a *App) Close() {
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := a.Mongo.Disconnect(ctx); err != nil {
			utils.Logger.WithError(err).Warn("Failed to disconnect from database cleanly")
			return
		}
		utils.Logger.Info("Database connection closed.")
	}
}
