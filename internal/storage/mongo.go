// Package storage connects the content store to MongoDB
package storage

import (
	"context"
	"fmt"

	"github.com/trainerlms/backend/internal/config"
	"github.com/trainerlms/backend/internal/repositories"
	"github.com/trainerlms/backend/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const appName = "trainer-lms-content-store"

// mongoConnector implements services.Connector using the official MongoDB driver
type mongoConnector struct {
	cfg    config.MongoDBConfig
	logger *zap.Logger
}

// NewMongoConnector creates a new MongoDB connector
func NewMongoConnector(cfg config.MongoDBConfig, logger *zap.Logger) *mongoConnector {
	return &mongoConnector{
		cfg:    cfg,
		logger: logger,
	}
}

// Connect dials MongoDB, waits for the primary to answer a ping and makes sure the
// content indexes exist. An index failure is logged and does not fail the connection.
func (c *mongoConnector) Connect(ctx context.Context) (services.Session, error) {
	opts := options.Client().
		ApplyURI(c.cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetServerSelectionTimeout(c.cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), c.cfg.ConnectTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(c.cfg.DBName)
	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		c.logger.Warn("failed to ensure content indexes", zap.String("database", c.cfg.DBName), zap.Error(err))
	}

	return newMongoSession(client, db), nil
}

// mongoSession is a live client together with the repositories built over its database
type mongoSession struct {
	client        *mongo.Client
	moduleContent services.ModuleContentRepository
	mediaFiles    services.MediaFileRepository
	questionMedia services.QuestionMediaRepository
	stats         statsRepo
}

// statsRepo is the stats repository surface a session needs
type statsRepo interface {
	services.StatsRepository
	ServerVersion(ctx context.Context) (string, error)
}

func newMongoSession(client *mongo.Client, db *mongo.Database) *mongoSession {
	return &mongoSession{
		client:        client,
		moduleContent: repositories.NewModuleContentRepository(db),
		mediaFiles:    repositories.NewMediaFileRepository(db),
		questionMedia: repositories.NewQuestionMediaRepository(db),
		stats:         repositories.NewStatsRepository(db),
	}
}

func (s *mongoSession) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoSession) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *mongoSession) ServerVersion(ctx context.Context) (string, error) {
	return s.stats.ServerVersion(ctx)
}

func (s *mongoSession) ModuleContent() services.ModuleContentRepository { return s.moduleContent }
func (s *mongoSession) MediaFiles() services.MediaFileRepository        { return s.mediaFiles }
func (s *mongoSession) QuestionMedia() services.QuestionMediaRepository { return s.questionMedia }
func (s *mongoSession) Stats() services.StatsRepository                 { return s.stats }
