package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trainerlms/backend/internal/config"
	"github.com/trainerlms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func testMongoConfig(pingInterval time.Duration) config.MongoDBConfig {
	return config.MongoDBConfig{
		Enabled:                  true,
		URI:                      "mongodb://localhost:27017",
		DBName:                   "trainer_lms_test",
		ConnectTimeout:           time.Second,
		PingInterval:             pingInterval,
		ReconnectInitialInterval: 500 * time.Millisecond,
		ReconnectMaxInterval:     30 * time.Second,
	}
}

func newTestStore(t *testing.T, connector Connector, pingInterval time.Duration) (*ContentStore, *fakeClock) {
	t.Helper()
	store := NewContentStore(connector, testMongoConfig(pingInterval), zap.NewNop())
	store.backoff.RandomizationFactor = 0
	store.backoff.Reset()

	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 123456789, time.UTC)}
	store.now = clock.Now
	return store, clock
}

func TestNewContentStore(t *testing.T) {
	session := newMemorySession()

	tests := []struct {
		name          string
		connector     Connector
		enabled       bool
		expectedState State
	}{
		{name: "enabled", connector: staticConnector(session), enabled: true, expectedState: StateDisconnected},
		{name: "disabled", connector: staticConnector(session), enabled: false, expectedState: StateUnconfigured},
		{name: "no connector", connector: nil, enabled: true, expectedState: StateUnconfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testMongoConfig(0)
			cfg.Enabled = tt.enabled

			store := NewContentStore(tt.connector, cfg, zap.NewNop())

			assert.NotNil(t, store)
			assert.Equal(t, tt.expectedState, store.State())
		})
	}

	assert.Equal(t, 0, session.pingCount(), "construction must not dial")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unconfigured", StateUnconfigured.String())
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "state(7)", State(7).String())
}

func TestContentStore_Unconfigured(t *testing.T) {
	connector := staticConnector(newMemorySession())
	cfg := testMongoConfig(0)
	cfg.Enabled = false
	store := NewContentStore(connector, cfg, zap.NewNop())
	ctx := context.Background()
	title := "ignored"

	checks := []struct {
		name string
		call func() error
	}{
		{name: "connect", call: func() error { return store.Connect(ctx) }},
		{name: "server version", call: func() error { _, err := store.ServerVersion(ctx); return err }},
		{name: "create module content", call: func() error {
			_, err := store.CreateModuleContent(ctx, &models.ModuleContentItem{ModuleID: "M1"})
			return err
		}},
		{name: "module content", call: func() error { _, err := store.ModuleContent(ctx, "M1"); return err }},
		{name: "update module content", call: func() error {
			_, err := store.UpdateModuleContent(ctx, primitive.NewObjectID().Hex(), models.ModuleContentPatch{Title: &title})
			return err
		}},
		{name: "update with empty patch", call: func() error {
			_, err := store.UpdateModuleContent(ctx, primitive.NewObjectID().Hex(), models.ModuleContentPatch{})
			return err
		}},
		{name: "delete module content", call: func() error { _, err := store.DeleteModuleContent(ctx, "x"); return err }},
		{name: "create media file", call: func() error {
			_, err := store.CreateMediaFile(ctx, &models.MediaFile{FileType: models.FileTypeVideo})
			return err
		}},
		{name: "media file", call: func() error { _, err := store.MediaFile(ctx, "x"); return err }},
		{name: "media files by type", call: func() error { _, err := store.MediaFilesByType(ctx, models.FileTypeVideo); return err }},
		{name: "update media file", call: func() error {
			_, err := store.UpdateMediaFile(ctx, "x", models.MediaFilePatch{Title: &title})
			return err
		}},
		{name: "delete media file", call: func() error { _, err := store.DeleteMediaFile(ctx, "x"); return err }},
		{name: "create question media", call: func() error {
			_, err := store.CreateQuestionMedia(ctx, &models.QuestionMedia{QuestionID: "Q1"})
			return err
		}},
		{name: "question media", call: func() error { _, err := store.QuestionMedia(ctx, "Q1"); return err }},
		{name: "collection stats", call: func() error {
			_, err := store.CollectionStats(ctx, models.CollectionMediaFiles)
			return err
		}},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			err := c.call()

			assert.True(t, IsCode(err, CodeNotConfigured), "got %v", err)
			assert.ErrorIs(t, err, ErrNotConfigured)
		})
	}

	assert.Equal(t, 0, connector.callCount())
	assert.False(t, store.IsConnected(ctx))
	assert.NoError(t, store.Close(ctx))
	assert.Equal(t, StateUnconfigured, store.State())
}

func TestContentStore_LazyConnect(t *testing.T) {
	session := newMemorySession()
	connector := staticConnector(session)
	store, _ := newTestStore(t, connector, 0)
	ctx := context.Background()

	assert.Equal(t, StateDisconnected, store.State())
	assert.False(t, store.IsConnected(ctx))
	assert.Equal(t, 0, connector.callCount(), "IsConnected must not dial")

	_, err := store.ModuleContent(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, 1, connector.callCount())
	assert.Equal(t, StateConnected, store.State())
	assert.Equal(t, 0, session.pingCount(), "a fresh connection is not probed again")

	_, err = store.ModuleContent(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, 1, connector.callCount())
	assert.Equal(t, 1, session.pingCount(), "zero ping interval probes on every operation")

	assert.True(t, store.IsConnected(ctx))
}

func TestContentStore_PingInterval(t *testing.T) {
	session := newMemorySession()
	store, clock := newTestStore(t, staticConnector(session), 10*time.Second)
	ctx := context.Background()

	require.NoError(t, store.Connect(ctx))

	clock.Advance(5 * time.Second)
	_, err := store.QuestionMedia(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, 0, session.pingCount())

	clock.Advance(5 * time.Second)
	_, err = store.QuestionMedia(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, 1, session.pingCount())

	clock.Advance(time.Second)
	_, err = store.QuestionMedia(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, 1, session.pingCount(), "a successful probe restarts the interval")
}

func TestContentStore_ReconnectAfterFailedProbe(t *testing.T) {
	first := newMemorySession()
	second := newMemorySession()
	connector := &mockConnector{connect: func(call int) (Session, error) {
		if call == 0 {
			return first, nil
		}
		return second, nil
	}}
	store, _ := newTestStore(t, connector, 0)
	ctx := context.Background()

	require.NoError(t, store.Connect(ctx))
	first.setPingErr(errors.New("connection reset by peer"))

	id, err := store.CreateQuestionMedia(ctx, &models.QuestionMedia{QuestionID: "Q1", MediaType: models.FileTypeImage})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 2, connector.callCount())
	assert.Equal(t, 1, first.disconnectCount())
	assert.Len(t, second.questions, 1)
	assert.Empty(t, first.questions)
	assert.Equal(t, StateConnected, store.State())
}

func TestContentStore_ReconnectBackoff(t *testing.T) {
	failures := 2
	session := newMemorySession()
	connector := &mockConnector{connect: func(call int) (Session, error) {
		if call < failures {
			return nil, errUnreachable
		}
		return session, nil
	}}
	store, clock := newTestStore(t, connector, 0)
	ctx := context.Background()

	_, err := store.MediaFilesByType(ctx, models.FileTypeVideo)
	assert.True(t, IsCode(err, CodeConnectionFailed))
	assert.ErrorIs(t, err, errUnreachable)
	assert.Equal(t, 1, connector.callCount())

	_, err = store.MediaFilesByType(ctx, models.FileTypeVideo)
	assert.True(t, IsCode(err, CodeConnectionFailed))
	assert.ErrorIs(t, err, ErrBackoff)
	assert.Equal(t, 1, connector.callCount(), "no dial inside the backoff window")

	clock.Advance(500 * time.Millisecond)
	_, err = store.MediaFilesByType(ctx, models.FileTypeVideo)
	assert.ErrorIs(t, err, errUnreachable)
	assert.Equal(t, 2, connector.callCount())

	clock.Advance(500 * time.Millisecond)
	_, err = store.MediaFilesByType(ctx, models.FileTypeVideo)
	assert.ErrorIs(t, err, ErrBackoff, "the window grows after repeated failures")
	assert.Equal(t, 2, connector.callCount())

	clock.Advance(250 * time.Millisecond)
	files, err := store.MediaFilesByType(ctx, models.FileTypeVideo)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Equal(t, 3, connector.callCount())
	assert.Equal(t, StateConnected, store.State())
	assert.True(t, store.retryAt.IsZero())
}

func TestContentStore_Close(t *testing.T) {
	session := newMemorySession()
	connector := staticConnector(session)
	store, _ := newTestStore(t, connector, 0)
	ctx := context.Background()

	require.NoError(t, store.Connect(ctx))

	assert.NoError(t, store.Close(ctx))
	assert.NoError(t, store.Close(ctx))
	assert.Equal(t, 1, session.disconnectCount())
	assert.Equal(t, StateDisconnected, store.State())
	assert.False(t, store.IsConnected(ctx))

	_, err := store.ModuleContent(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, 2, connector.callCount(), "an operation after close reconnects")
}

func TestContentStore_IsConnectedDropsDeadSession(t *testing.T) {
	session := newMemorySession()
	store, _ := newTestStore(t, staticConnector(session), 0)
	ctx := context.Background()

	require.NoError(t, store.Connect(ctx))
	session.setPingErr(errors.New("socket closed"))

	assert.False(t, store.IsConnected(ctx))
	assert.Equal(t, StateDisconnected, store.State())
	assert.Equal(t, 1, session.disconnectCount())
}

func TestContentStore_ErrorClassification(t *testing.T) {
	networkErr := mongo.CommandError{Code: 6, Message: "connection reset", Labels: []string{"NetworkError"}}

	tests := []struct {
		name            string
		id              string
		opErr           error
		expectedCode    ErrorCode
		expectedDropped bool
	}{
		{
			name:         "invalid id",
			id:           "not-an-object-id",
			expectedCode: CodeInvalidID,
		},
		{
			name:         "driver error",
			id:           primitive.NewObjectID().Hex(),
			opErr:        mongo.CommandError{Code: 112, Message: "WriteConflict", Name: "WriteConflict"},
			expectedCode: CodeDriverError,
		},
		{
			name:            "network error drops the connection",
			id:              primitive.NewObjectID().Hex(),
			opErr:           networkErr,
			expectedCode:    CodeDriverError,
			expectedDropped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newMemorySession()
			session.opErr = tt.opErr
			store, _ := newTestStore(t, staticConnector(session), 0)
			ctx := context.Background()
			require.NoError(t, store.Connect(ctx))

			deleted, err := store.DeleteMediaFile(ctx, tt.id)

			assert.False(t, deleted)
			assert.True(t, IsCode(err, tt.expectedCode), "got %v", err)
			if tt.expectedDropped {
				assert.Equal(t, StateDisconnected, store.State())
				assert.Equal(t, 1, session.disconnectCount())
			} else {
				assert.Equal(t, StateConnected, store.State())
			}
		})
	}
}

func TestContentStore_EmptyPatchSkipsDatabase(t *testing.T) {
	connector := staticConnector(newMemorySession())
	store, _ := newTestStore(t, connector, 0)
	ctx := context.Background()

	updated, err := store.UpdateModuleContent(ctx, primitive.NewObjectID().Hex(), models.ModuleContentPatch{})
	assert.NoError(t, err)
	assert.False(t, updated)

	updated, err = store.UpdateMediaFile(ctx, primitive.NewObjectID().Hex(), models.MediaFilePatch{})
	assert.NoError(t, err)
	assert.False(t, updated)

	assert.Equal(t, 0, connector.callCount())
}

func TestContentStore_CreateAssignsIDAndTimestamps(t *testing.T) {
	session := newMemorySession()
	store, clock := newTestStore(t, staticConnector(session), 0)
	ctx := context.Background()
	stale := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	expected := clock.Now().Truncate(time.Millisecond)

	item := &models.ModuleContentItem{
		ID:        "caller-supplied",
		ModuleID:  "M1",
		Title:     "Introduction",
		CreatedAt: stale,
		UpdatedAt: stale,
	}
	id, err := store.CreateModuleContent(ctx, item)

	require.NoError(t, err)
	assert.NotEqual(t, "caller-supplied", id)
	assert.Equal(t, id, item.ID)
	assert.Equal(t, expected, item.CreatedAt)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, time.UTC, item.CreatedAt.Location())

	media := &models.QuestionMedia{QuestionID: "Q1", CreatedAt: stale}
	_, err = store.CreateQuestionMedia(ctx, media)
	require.NoError(t, err)
	assert.Equal(t, expected, media.CreatedAt)
}

func TestContentStore_CreateThenGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, staticConnector(newMemorySession()), 0)
	ctx := context.Background()
	thumbnail := "s3://lms-bucket/media/thumbnails/advanced-sql.jpg"

	input := models.MediaFile{
		FileType:       models.FileTypeVideo,
		Title:          "Advanced SQL Tutorial",
		FilePath:       "s3://lms-bucket/media/advanced-sql.mp4",
		FileSizeBytes:  104857600,
		ThumbnailPath:  &thumbnail,
		UploadMetadata: models.Metadata{}.Set("original_filename", models.String("advanced-sql-tutorial.mp4")),
		EncodingStatus: models.EncodingStatusCompleted,
	}
	file := input

	id, err := store.CreateMediaFile(ctx, &file)
	require.NoError(t, err)

	fetched, err := store.MediaFile(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, fetched)

	expected := input
	expected.ID = id
	expected.CreatedAt = file.CreatedAt
	expected.UpdatedAt = file.UpdatedAt
	assert.Equal(t, expected, *fetched)

	missing, err := store.MediaFile(ctx, primitive.NewObjectID().Hex())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentStore_ServerVersionAndStats(t *testing.T) {
	session := newMemorySession()
	session.stats[models.CollectionModuleContent] = models.CollectionStats{Count: 3, SizeBytes: 1536, AvgObjSizeBytes: 512}
	store, _ := newTestStore(t, staticConnector(session), 0)
	ctx := context.Background()

	version, err := store.ServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7.0.12", version)

	stats, err := store.CollectionStats(ctx, models.CollectionModuleContent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)

	stats, err = store.CollectionStats(ctx, models.CollectionQuestionMedia)
	require.NoError(t, err)
	assert.Equal(t, models.CollectionStats{}, stats)
}

func TestContentStore_CurrentServerVersionNeverDials(t *testing.T) {
	session := newMemorySession()
	connector := staticConnector(session)
	store, _ := newTestStore(t, connector, 0)
	ctx := context.Background()

	version, ok := store.CurrentServerVersion(ctx)
	assert.False(t, ok)
	assert.Empty(t, version)
	assert.Equal(t, 0, connector.callCount())

	require.NoError(t, store.Connect(ctx))
	version, ok = store.CurrentServerVersion(ctx)
	assert.True(t, ok)
	assert.Equal(t, "7.0.12", version)

	session.opErr = mongo.CommandError{Code: 6, Message: "connection reset", Labels: []string{"NetworkError"}}
	_, ok = store.CurrentServerVersion(ctx)
	assert.False(t, ok)
	assert.Equal(t, StateDisconnected, store.State())

	_, ok = store.CurrentServerVersion(ctx)
	assert.False(t, ok)
	assert.Equal(t, 1, connector.callCount())
}
