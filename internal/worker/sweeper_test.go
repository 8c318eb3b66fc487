package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/model"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// staleRepo stubs only the methods the sweeper touches.
type staleRepo struct {
	repository.ProductRepository
	stale   []model.Product
	deleted []string
	delErr  error
}

func (r *staleRepo) ListStale(_ context.Context, _ time.Time, _ int) ([]model.Product, error) {
	return r.stale, nil
}

func (r *staleRepo) Delete(_ context.Context, id string) error {
	if r.delErr != nil {
		return r.delErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type recordingStore struct {
	deleted []string
	delErr  error
}

func (s *recordingStore) Put(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return "/uploads/" + key, nil
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.delErr
}

func (s *recordingStore) KeyFromURL(rawURL string) (string, bool) {
	const prefix = "/uploads/"
	if len(rawURL) <= len(prefix) || rawURL[:len(prefix)] != prefix {
		return "", false
	}
	return rawURL[len(prefix):], true
}

func staleProduct(status, front, back string) model.Product {
	return model.Product{
		ID:            primitive.NewObjectID(),
		Name:          "Vestido Órfão",
		Status:        status,
		FrontImageURL: front,
		BackImageURL:  back,
		CreatedAt:     time.Now().Add(-2 * time.Hour),
	}
}

func TestSweepRemovesStaleRecordsAndBlobs(t *testing.T) {
	p := staleProduct(model.StatusFailed, "/uploads/clothing/a_front.jpg", "/uploads/clothing/a_back.jpg")
	repo := &staleRepo{stale: []model.Product{p}}
	store := &recordingStore{}

	sweep(context.Background(), SweeperConfig{Repo: repo, Store: store, MaxAge: time.Hour})

	assert.Equal(t, []string{p.ID.Hex()}, repo.deleted)
	assert.ElementsMatch(t,
		[]string{"clothing/a_front.jpg", "clothing/a_back.jpg"},
		store.deleted)
}

func TestSweepSkipsEmptyAndForeignURLs(t *testing.T) {
	p := staleProduct(model.StatusPending, "", "https://cdn.example.com/x.jpg")
	repo := &staleRepo{stale: []model.Product{p}}
	store := &recordingStore{}

	sweep(context.Background(), SweeperConfig{Repo: repo, Store: store, MaxAge: time.Hour})

	assert.Empty(t, store.deleted)
	assert.Equal(t, []string{p.ID.Hex()}, repo.deleted)
}

func TestSweepBlobFailureStillRemovesRecord(t *testing.T) {
	p := staleProduct(model.StatusFailed, "/uploads/clothing/b_front.jpg", "")
	repo := &staleRepo{stale: []model.Product{p}}
	store := &recordingStore{delErr: errors.New("bucket fora do ar")}

	sweep(context.Background(), SweeperConfig{Repo: repo, Store: store, MaxAge: time.Hour})

	require.Equal(t, []string{p.ID.Hex()}, repo.deleted)
}
