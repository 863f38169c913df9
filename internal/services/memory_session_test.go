package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/trainerlms/backend/internal/models"
	"github.com/trainerlms/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memorySession is an in-memory Session used to exercise store semantics without a database
type memorySession struct {
	mu          sync.Mutex
	pingErr     error
	opErr       error
	pings       int
	disconnects int
	version     string

	content   []models.ModuleContentItem
	media     []models.MediaFile
	questions []models.QuestionMedia
	stats     map[string]models.CollectionStats
}

func newMemorySession() *memorySession {
	return &memorySession{
		version: "7.0.12",
		stats:   map[string]models.CollectionStats{},
	}
}

func (s *memorySession) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pings++
	return s.pingErr
}

func (s *memorySession) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnects++
	return nil
}

func (s *memorySession) ServerVersion(ctx context.Context) (string, error) {
	if s.opErr != nil {
		return "", s.opErr
	}
	return s.version, nil
}

func (s *memorySession) ModuleContent() ModuleContentRepository { return memoryContentRepo{s} }
func (s *memorySession) MediaFiles() MediaFileRepository        { return memoryMediaRepo{s} }
func (s *memorySession) QuestionMedia() QuestionMediaRepository { return memoryQuestionRepo{s} }
func (s *memorySession) Stats() StatsRepository                 { return memoryStatsRepo{s} }

func (s *memorySession) setPingErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

func (s *memorySession) pingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

func (s *memorySession) disconnectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnects
}

type memoryContentRepo struct{ s *memorySession }

func (r memoryContentRepo) Create(ctx context.Context, item *models.ModuleContentItem) error {
	if r.s.opErr != nil {
		return r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = primitive.NewObjectID().Hex()
	r.s.content = append(r.s.content, *item)
	return nil
}

func (r memoryContentRepo) ListByModule(ctx context.Context, moduleID string) ([]models.ModuleContentItem, error) {
	if r.s.opErr != nil {
		return nil, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := []models.ModuleContentItem{}
	for _, item := range r.s.content {
		if item.ModuleID == moduleID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SequenceOrder < items[j].SequenceOrder
	})
	return items, nil
}

func (r memoryContentRepo) Update(ctx context.Context, id string, patch models.ModuleContentPatch, updatedAt time.Time) (bool, error) {
	if _, err := repositories.ParseID(id); err != nil {
		return false, err
	}
	if r.s.opErr != nil {
		return false, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.content {
		item := &r.s.content[i]
		if item.ID != id {
			continue
		}
		if patch.ContentType != nil {
			item.ContentType = *patch.ContentType
		}
		if patch.Title != nil {
			item.Title = *patch.Title
		}
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.FileReference != nil {
			item.FileReference = *patch.FileReference
		}
		if patch.FileSizeBytes != nil {
			item.FileSizeBytes = *patch.FileSizeBytes
		}
		if patch.DurationSeconds != nil {
			item.DurationSeconds = *patch.DurationSeconds
		}
		if patch.ThumbnailURL != nil {
			item.ThumbnailURL = *patch.ThumbnailURL
		}
		if patch.SequenceOrder != nil {
			item.SequenceOrder = *patch.SequenceOrder
		}
		if patch.Metadata != nil {
			item.Metadata = *patch.Metadata
		}
		item.UpdatedAt = updatedAt
		return true, nil
	}
	return false, nil
}

func (r memoryContentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := repositories.ParseID(id); err != nil {
		return false, err
	}
	if r.s.opErr != nil {
		return false, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, item := range r.s.content {
		if item.ID == id {
			r.s.content = append(r.s.content[:i], r.s.content[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memoryMediaRepo struct{ s *memorySession }

func (r memoryMediaRepo) Create(ctx context.Context, file *models.MediaFile) error {
	if r.s.opErr != nil {
		return r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	file.ID = primitive.NewObjectID().Hex()
	r.s.media = append(r.s.media, *file)
	return nil
}

func (r memoryMediaRepo) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	if _, err := repositories.ParseID(id); err != nil {
		return nil, err
	}
	if r.s.opErr != nil {
		return nil, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, file := range r.s.media {
		if file.ID == id {
			found := file
			return &found, nil
		}
	}
	return nil, nil
}

func (r memoryMediaRepo) ListByType(ctx context.Context, fileType models.FileType) ([]models.MediaFile, error) {
	if r.s.opErr != nil {
		return nil, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	files := []models.MediaFile{}
	for _, file := range r.s.media {
		if file.FileType == fileType {
			files = append(files, file)
		}
	}
	return files, nil
}

func (r memoryMediaRepo) Update(ctx context.Context, id string, patch models.MediaFilePatch, updatedAt time.Time) (bool, error) {
	if _, err := repositories.ParseID(id); err != nil {
		return false, err
	}
	if r.s.opErr != nil {
		return false, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.media {
		file := &r.s.media[i]
		if file.ID != id {
			continue
		}
		if patch.FileType != nil {
			file.FileType = *patch.FileType
		}
		if patch.Title != nil {
			file.Title = *patch.Title
		}
		if patch.FilePath != nil {
			file.FilePath = *patch.FilePath
		}
		if patch.FileSizeBytes != nil {
			file.FileSizeBytes = *patch.FileSizeBytes
		}
		if patch.DurationSeconds != nil {
			file.DurationSeconds = *patch.DurationSeconds
		}
		if patch.ThumbnailPath != nil {
			thumbnail := *patch.ThumbnailPath
			file.ThumbnailPath = &thumbnail
		}
		if patch.UploadMetadata != nil {
			file.UploadMetadata = *patch.UploadMetadata
		}
		if patch.EncodingStatus != nil {
			file.EncodingStatus = *patch.EncodingStatus
		}
		file.UpdatedAt = updatedAt
		return true, nil
	}
	return false, nil
}

func (r memoryMediaRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := repositories.ParseID(id); err != nil {
		return false, err
	}
	if r.s.opErr != nil {
		return false, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, file := range r.s.media {
		if file.ID == id {
			r.s.media = append(r.s.media[:i], r.s.media[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memoryQuestionRepo struct{ s *memorySession }

func (r memoryQuestionRepo) Create(ctx context.Context, media *models.QuestionMedia) error {
	if r.s.opErr != nil {
		return r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	media.ID = primitive.NewObjectID().Hex()
	r.s.questions = append(r.s.questions, *media)
	return nil
}

func (r memoryQuestionRepo) ListByQuestion(ctx context.Context, questionID string) ([]models.QuestionMedia, error) {
	if r.s.opErr != nil {
		return nil, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	media := []models.QuestionMedia{}
	for _, m := range r.s.questions {
		if m.QuestionID == questionID {
			media = append(media, m)
		}
	}
	return media, nil
}

type memoryStatsRepo struct{ s *memorySession }

func (r memoryStatsRepo) CollectionStats(ctx context.Context, name string) (models.CollectionStats, error) {
	if r.s.opErr != nil {
		return models.CollectionStats{}, r.s.opErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.stats[name], nil
}

// mockConnector hands out sessions produced by connect, counting the attempts
type mockConnector struct {
	mu      sync.Mutex
	calls   int
	connect func(call int) (Session, error)
}

func (m *mockConnector) Connect(ctx context.Context) (Session, error) {
	m.mu.Lock()
	call := m.calls
	m.calls++
	m.mu.Unlock()
	return m.connect(call)
}

func (m *mockConnector) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func staticConnector(session *memorySession) *mockConnector {
	return &mockConnector{connect: func(int) (Session, error) { return session, nil }}
}

func failingConnector(err error) *mockConnector {
	return &mockConnector{connect: func(int) (Session, error) { return nil, err }}
}

var errUnreachable = errors.New("server selection error: context deadline exceeded")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
