package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/trainerlms/backend/internal/config"
	"github.com/trainerlms/backend/internal/models"
	"github.com/trainerlms/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ModuleContentRepository is the interface that wraps methods for module content collection access
type ModuleContentRepository interface {
	// Method Create inserts a new content item and writes the generated ID back into "item".
	//
	// Timestamps are stored as given, the caller is responsible for setting them.
	// If some error will occur during insert, the error will be returned and "item.ID" stays empty.
	Create(ctx context.Context, item *models.ModuleContentItem) error
	// Method ListByModule retrieve all content items of a module.
	//
	// Items are ordered by ascending sequence order, items with the same sequence order keep their creation order.
	// An unknown module yields an empty slice, not an error.
	ListByModule(ctx context.Context, moduleID string) ([]models.ModuleContentItem, error)
	// Method Update merges "patch" into the item with the given ID and stores "updatedAt".
	//
	// Returns true only if the stored document actually changed.
	// If "id" is not a valid identifier the returned error wraps repositories.ErrInvalidID.
	Update(ctx context.Context, id string, patch models.ModuleContentPatch, updatedAt time.Time) (bool, error)
	// Method Delete removes the item with the given ID.
	//
	// Returns false without an error if no such item exists.
	// Please reference Update method for information about invalid identifiers.
	Delete(ctx context.Context, id string) (bool, error)
}

// MediaFileRepository is the interface that wraps methods for media files collection access
type MediaFileRepository interface {
	// Method Create inserts a new media file and writes the generated ID back into "file".
	//
	// Please reference ModuleContentRepository.Create for timestamp and error behaviour.
	Create(ctx context.Context, file *models.MediaFile) error
	// Method GetByID retrieve a media file by its ID.
	//
	// Returns nil without an error if the file does not exist.
	// If "id" is not a valid identifier the returned error wraps repositories.ErrInvalidID.
	GetByID(ctx context.Context, id string) (*models.MediaFile, error)
	// Method ListByType retrieve all media files of the given file type in natural order.
	ListByType(ctx context.Context, fileType models.FileType) ([]models.MediaFile, error)
	// Method Update merges "patch" into the media file and stores "updatedAt".
	//
	// Please reference ModuleContentRepository.Update for return values.
	Update(ctx context.Context, id string, patch models.MediaFilePatch, updatedAt time.Time) (bool, error)
	// Method Delete removes the media file with the given ID.
	Delete(ctx context.Context, id string) (bool, error)
}

// QuestionMediaRepository is the interface that wraps methods for question media collection access.
// Question media can not be updated or deleted once attached.
type QuestionMediaRepository interface {
	// Method Create inserts a new question media record and writes the generated ID back into "media".
	Create(ctx context.Context, media *models.QuestionMedia) error
	// Method ListByQuestion retrieve all media attached to a question, without any ordering guarantee.
	ListByQuestion(ctx context.Context, questionID string) ([]models.QuestionMedia, error)
}

// StatsRepository is the interface that wraps collection statistics retrieval
type StatsRepository interface {
	// Method CollectionStats retrieve document count and storage sizes of a collection.
	//
	// A collection that does not exist yet reports zero values.
	CollectionStats(ctx context.Context, name string) (models.CollectionStats, error)
}

// Session is one live connection to the document store together with the repositories built over it
type Session interface {
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
	ServerVersion(ctx context.Context) (string, error)
	ModuleContent() ModuleContentRepository
	MediaFiles() MediaFileRepository
	QuestionMedia() QuestionMediaRepository
	Stats() StatsRepository
}

// Connector opens sessions to the document store.
// Connect must return only after the server answered a liveness probe.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// State is the connection state of the content store
type State int

const (
	StateUnconfigured State = iota
	StateDisconnected
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ContentStore owns the document store connection and exposes typed operations over the
// content collections. One instance is shared by the whole process.
//
// The connection is established lazily by the first operation. Every operation verifies the
// connection is live and reconnects once if it is not. Failed connection attempts start an
// exponential backoff window during which operations fail fast with CodeConnectionFailed.
type ContentStore struct {
	connector  Connector
	cfg        config.MongoDBConfig
	logger     *zap.Logger
	now        func() time.Time
	configured bool

	// dialMu serializes connection attempts
	dialMu sync.Mutex

	mu        sync.Mutex
	state     State
	session   Session
	lastProbe time.Time
	retryAt   time.Time
	backoff   *backoff.ExponentialBackOff
}

// NewContentStore creates a new content store. Nothing is dialed until the first operation.
// A disabled configuration or a nil connector leaves the store unconfigured.
func NewContentStore(connector Connector, cfg config.MongoDBConfig, logger *zap.Logger) *ContentStore {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.ReconnectInitialInterval
	b.MaxInterval = cfg.ReconnectMaxInterval
	b.Reset()

	s := &ContentStore{
		connector:  connector,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		configured: cfg.Enabled && connector != nil,
		state:      StateDisconnected,
		backoff:    b,
	}

	if !s.configured {
		s.state = StateUnconfigured
		logger.Warn("document store is not configured, content operations are disabled")
	}

	return s
}

// State returns the current connection state
func (s *ContentStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect establishes the connection if it is not live yet
func (s *ContentStore) Connect(ctx context.Context) error {
	_, err := s.acquire(ctx, "connect")
	return err
}

// IsConnected probes the current connection. It never dials.
func (s *ContentStore) IsConnected(ctx context.Context) bool {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		return false
	}
	if err := session.Ping(ctx); err != nil {
		if ctx.Err() == nil {
			s.drop(session, "is_connected", err)
		}
		return false
	}
	s.markProbe(session)
	return true
}

// Close disconnects and returns the store to the disconnected state.
// Calling Close on a closed or unconfigured store does nothing.
func (s *ContentStore) Close(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.session = nil
	if s.state == StateConnected {
		s.state = StateDisconnected
	}
	s.mu.Unlock()

	if session == nil {
		return nil
	}
	if err := session.Disconnect(ctx); err != nil {
		return &StoreError{Code: CodeDriverError, Op: "close", Cause: err}
	}

	s.logger.Info("document store connection closed")
	return nil
}

// ServerVersion returns the version reported by the database server
func (s *ContentStore) ServerVersion(ctx context.Context) (string, error) {
	const op = "server_version"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return "", err
	}

	version, err := session.ServerVersion(ctx)
	if err != nil {
		return "", s.fail(ctx, op, session, err)
	}
	return version, nil
}

// CurrentServerVersion returns the version reported over the current connection.
// It never dials: without a live session it reports false.
func (s *ContentStore) CurrentServerVersion(ctx context.Context) (string, bool) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		return "", false
	}
	version, err := session.ServerVersion(ctx)
	if err != nil {
		_ = s.fail(ctx, "server_version", session, err)
		return "", false
	}
	return version, true
}

// CreateModuleContent stores a new content item and returns its generated ID.
//
// Any ID or timestamps set on "item" are replaced by store assigned values, which are
// written back into "item". "item" must not be nil.
func (s *ContentStore) CreateModuleContent(ctx context.Context, item *models.ModuleContentItem) (string, error) {
	const op = "create_module_content"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return "", err
	}

	now := s.timestamp()
	item.ID = ""
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := session.ModuleContent().Create(ctx, item); err != nil {
		return "", s.fail(ctx, op, session, err)
	}
	return item.ID, nil
}

// ModuleContent returns the content items of a module ordered by sequence order
func (s *ContentStore) ModuleContent(ctx context.Context, moduleID string) ([]models.ModuleContentItem, error) {
	const op = "module_content"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return nil, err
	}

	items, err := session.ModuleContent().ListByModule(ctx, moduleID)
	if err != nil {
		return nil, s.fail(ctx, op, session, err)
	}
	return items, nil
}

// UpdateModuleContent merges "patch" into a content item and refreshes its updated_at.
// An empty patch changes nothing and reports false without contacting the database.
func (s *ContentStore) UpdateModuleContent(ctx context.Context, id string, patch models.ModuleContentPatch) (bool, error) {
	const op = "update_module_content"
	if !s.configured {
		return false, notConfigured(op)
	}
	if patch.IsEmpty() {
		return false, nil
	}

	session, err := s.acquire(ctx, op)
	if err != nil {
		return false, err
	}

	updated, err := session.ModuleContent().Update(ctx, id, patch, s.timestamp())
	if err != nil {
		return false, s.fail(ctx, op, session, err)
	}
	return updated, nil
}

// DeleteModuleContent removes a content item. Returns false if it did not exist.
func (s *ContentStore) DeleteModuleContent(ctx context.Context, id string) (bool, error) {
	const op = "delete_module_content"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return false, err
	}

	deleted, err := session.ModuleContent().Delete(ctx, id)
	if err != nil {
		return false, s.fail(ctx, op, session, err)
	}
	return deleted, nil
}

// CreateMediaFile stores a new media file and returns its generated ID.
// Please reference CreateModuleContent for ID and timestamp handling.
func (s *ContentStore) CreateMediaFile(ctx context.Context, file *models.MediaFile) (string, error) {
	const op = "create_media_file"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return "", err
	}

	now := s.timestamp()
	file.ID = ""
	file.CreatedAt = now
	file.UpdatedAt = now

	if err := session.MediaFiles().Create(ctx, file); err != nil {
		return "", s.fail(ctx, op, session, err)
	}
	return file.ID, nil
}

// MediaFile returns a media file by ID, or nil if it does not exist
func (s *ContentStore) MediaFile(ctx context.Context, id string) (*models.MediaFile, error) {
	const op = "media_file"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return nil, err
	}

	file, err := session.MediaFiles().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, op, session, err)
	}
	return file, nil
}

// MediaFilesByType returns all media files of the given type
func (s *ContentStore) MediaFilesByType(ctx context.Context, fileType models.FileType) ([]models.MediaFile, error) {
	const op = "media_files_by_type"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return nil, err
	}

	files, err := session.MediaFiles().ListByType(ctx, fileType)
	if err != nil {
		return nil, s.fail(ctx, op, session, err)
	}
	return files, nil
}

// UpdateMediaFile merges "patch" into a media file and refreshes its updated_at.
// An empty patch changes nothing and reports false without contacting the database.
func (s *ContentStore) UpdateMediaFile(ctx context.Context, id string, patch models.MediaFilePatch) (bool, error) {
	const op = "update_media_file"
	if !s.configured {
		return false, notConfigured(op)
	}
	if patch.IsEmpty() {
		return false, nil
	}

	session, err := s.acquire(ctx, op)
	if err != nil {
		return false, err
	}

	updated, err := session.MediaFiles().Update(ctx, id, patch, s.timestamp())
	if err != nil {
		return false, s.fail(ctx, op, session, err)
	}
	return updated, nil
}

// DeleteMediaFile removes a media file. Returns false if it did not exist.
func (s *ContentStore) DeleteMediaFile(ctx context.Context, id string) (bool, error) {
	const op = "delete_media_file"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return false, err
	}

	deleted, err := session.MediaFiles().Delete(ctx, id)
	if err != nil {
		return false, s.fail(ctx, op, session, err)
	}
	return deleted, nil
}

// CreateQuestionMedia attaches media to a quiz question and returns the generated ID.
// Only created_at is stamped, question media has no update time.
func (s *ContentStore) CreateQuestionMedia(ctx context.Context, media *models.QuestionMedia) (string, error) {
	const op = "create_question_media"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return "", err
	}

	media.ID = ""
	media.CreatedAt = s.timestamp()

	if err := session.QuestionMedia().Create(ctx, media); err != nil {
		return "", s.fail(ctx, op, session, err)
	}
	return media.ID, nil
}

// QuestionMedia returns all media attached to a question
func (s *ContentStore) QuestionMedia(ctx context.Context, questionID string) ([]models.QuestionMedia, error) {
	const op = "question_media"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return nil, err
	}

	media, err := session.QuestionMedia().ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, s.fail(ctx, op, session, err)
	}
	return media, nil
}

// CollectionStats returns document count and storage sizes of a collection
func (s *ContentStore) CollectionStats(ctx context.Context, name string) (models.CollectionStats, error) {
	const op = "collection_stats"
	session, err := s.acquire(ctx, op)
	if err != nil {
		return models.CollectionStats{}, err
	}

	stats, err := session.Stats().CollectionStats(ctx, name)
	if err != nil {
		return models.CollectionStats{}, s.fail(ctx, op, session, err)
	}
	return stats, nil
}

// acquire returns a live session, probing the current one when the last probe is
// older than the ping interval and reconnecting once if the probe fails
func (s *ContentStore) acquire(ctx context.Context, op string) (Session, error) {
	if !s.configured {
		return nil, notConfigured(op)
	}

	s.mu.Lock()
	session := s.session
	fresh := session != nil && s.now().Sub(s.lastProbe) < s.cfg.PingInterval
	s.mu.Unlock()

	if fresh {
		return session, nil
	}

	if session != nil {
		err := session.Ping(ctx)
		if err == nil {
			s.markProbe(session)
			return session, nil
		}
		if ctx.Err() != nil {
			return nil, &StoreError{Code: CodeConnectionFailed, Op: op, Cause: err}
		}
		s.drop(session, op, err)
	}

	return s.dial(ctx, op)
}

// dial opens a new session unless another caller already did or the backoff window is open
func (s *ContentStore) dial(ctx context.Context, op string) (Session, error) {
	s.dialMu.Lock()
	defer s.dialMu.Unlock()

	s.mu.Lock()
	if s.session != nil {
		session := s.session
		s.mu.Unlock()
		return session, nil
	}
	retryAt := s.retryAt
	s.mu.Unlock()

	if s.now().Before(retryAt) {
		return nil, &StoreError{
			Code:  CodeConnectionFailed,
			Op:    op,
			Cause: fmt.Errorf("%w until %s", ErrBackoff, retryAt.UTC().Format(time.RFC3339Nano)),
		}
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	session, err := s.connector.Connect(dialCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &StoreError{Code: CodeConnectionFailed, Op: op, Cause: err}
		}

		s.mu.Lock()
		wait := s.backoff.NextBackOff()
		s.retryAt = s.now().Add(wait)
		s.mu.Unlock()

		s.logger.Error("failed to connect to document store",
			zap.String("op", op),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
		return nil, &StoreError{Code: CodeConnectionFailed, Op: op, Cause: err}
	}

	s.mu.Lock()
	s.backoff.Reset()
	s.retryAt = time.Time{}
	s.session = session
	s.state = StateConnected
	s.lastProbe = s.now()
	s.mu.Unlock()

	s.logger.Info("connected to document store", zap.String("database", s.cfg.DBName))
	return session, nil
}

// markProbe records a successful liveness probe of the current session
func (s *ContentStore) markProbe(session Session) {
	s.mu.Lock()
	if s.session == session {
		s.lastProbe = s.now()
	}
	s.mu.Unlock()
}

// drop forgets a session that failed and releases its resources
func (s *ContentStore) drop(session Session, op string, cause error) {
	s.mu.Lock()
	if s.session != session {
		s.mu.Unlock()
		return
	}
	s.session = nil
	s.state = StateDisconnected
	s.mu.Unlock()

	s.logger.Warn("document store connection lost", zap.String("op", op), zap.Error(cause))

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ConnectTimeout)
	defer cancel()
	if err := session.Disconnect(ctx); err != nil {
		s.logger.Debug("failed to disconnect lost session", zap.Error(err))
	}
}

// fail classifies an operation error. Network failures and server side timeouts
// also drop the session so the next operation reconnects.
func (s *ContentStore) fail(ctx context.Context, op string, session Session, err error) error {
	if errors.Is(err, repositories.ErrInvalidID) {
		return &StoreError{Code: CodeInvalidID, Op: op, Cause: err}
	}
	if mongo.IsNetworkError(err) || (mongo.IsTimeout(err) && ctx.Err() == nil) {
		s.drop(session, op, err)
	}
	return &StoreError{Code: CodeDriverError, Op: op, Cause: err}
}

// timestamp returns the current time in UTC at the precision the store keeps
func (s *ContentStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func notConfigured(op string) error {
	return &StoreError{Code: CodeNotConfigured, Op: op, Cause: ErrNotConfigured}
}
