package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"carrental/pkg/cache"
	"carrental/pkg/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("snapshot not found")

// Store keeps exactly one encoded snapshot.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}

const (
	BackendBlob  = "blob"
	BackendMongo = "mongodb"
	BackendRedis = "redis"
)

// BlobStore keeps the snapshot as a single object of a storage provider.
type BlobStore struct {
	provider storage.StorageProvider
	key      string
}

func NewBlobStore(provider storage.StorageProvider, key string) *BlobStore {
	return &BlobStore{provider: provider, key: key}
}

func (b *BlobStore) Save(ctx context.Context, data []byte) error {
	_, err := b.provider.Upload(ctx, &storage.UploadRequest{
		Key:         b.key,
		Reader:      bytes.NewReader(data),
		ContentType: "application/bson",
		Size:        int64(len(data)),
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (b *BlobStore) Load(ctx context.Context) ([]byte, error) {
	resp, err := b.provider.Download(ctx, b.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer resp.Reader.Close()

	data, err := io.ReadAll(resp.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// MongoStore keeps the snapshot as one document keyed by id.
type MongoStore struct {
	collection *mongo.Collection
	id         string
}

type snapshotDocument struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoStore(collection *mongo.Collection, id string) *MongoStore {
	return &MongoStore{collection: collection, id: id}
}

func (m *MongoStore) Save(ctx context.Context, data []byte) error {
	doc := snapshotDocument{ID: m.id, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": m.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (m *MongoStore) Load(ctx context.Context) ([]byte, error) {
	var doc snapshotDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": m.id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return doc.Data, nil
}

// RedisStore keeps the snapshot under a single key without expiry.
type RedisStore struct {
	cache *cache.RedisCache
	key   string
}

func NewRedisStore(c *cache.RedisCache, key string) *RedisStore {
	return &RedisStore{cache: c, key: key}
}

func (r *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := r.cache.SetBytes(ctx, r.key, data, 0); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) ([]byte, error) {
	exists, err := r.cache.Exists(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	data, err := r.cache.GetBytes(ctx, r.key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}

// MemoryStore keeps the snapshot in process; used when persistence is disabled.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}
