package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/cache"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/model"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/storage"

	"github.com/rs/zerolog/log"
)

// PageSize is the fixed page length of the public catalog.
const PageSize = 12

// MaxImageBytes caps uploaded image size (10MB, matching the admin form).
const MaxImageBytes = 10 * 1024 * 1024

// AllowedImageTypes are the content types accepted for product images.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ErrDuplicateName means a product with the same name already exists
// (checked exactly and case-insensitively before insert).
var ErrDuplicateName = errors.New("já existe um vestido com esse nome")

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	List(ctx context.Context, f dto.ProductFilter) (*dto.ProductListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductResponse, error)
	ListFeatured(ctx context.Context) ([]dto.ProductResponse, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, in dto.CreateProductInput) (string, error)
	Update(ctx context.Context, id string, in dto.UpdateProductInput) error
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, value bool) error
}

type productService struct {
	repo  repository.ProductRepository
	store storage.Storage
	cache *cache.Cache
}

func NewProductService(repo repository.ProductRepository, store storage.Storage, c *cache.Cache) ProductService {
	return &productService{repo: repo, store: store, cache: c}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *productService) List(ctx context.Context, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	// Only first pages are cached; cursored requests always hit the store.
	cacheable := f.Cursor == ""
	key := cache.ListKey(f.Type, f.Color, f.Size, f.Search)
	if cacheable {
		var cached dto.ProductListResponse
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	// Fetch one past the page to learn whether a next page exists.
	items, err := s.repo.List(ctx, f, PageSize+1)
	if err != nil {
		if errors.Is(err, repository.ErrCursorNotFound) {
			// Cursor deleted between pages: empty page, not an error.
			return &dto.ProductListResponse{Items: []dto.ProductResponse{}}, nil
		}
		return nil, err
	}

	resp := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, PageSize)}
	hasMore := len(items) > PageSize
	if hasMore {
		items = items[:PageSize]
	}
	for i := range items {
		resp.Items = append(resp.Items, toResponse(&items[i]))
	}
	if hasMore {
		next := items[len(items)-1].ID.Hex()
		resp.NextCursor = &next
	}

	if cacheable {
		s.cache.Set(ctx, key, resp)
	}
	return resp, nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := toResponse(p)
	return &r, nil
}

func (s *productService) ListFeatured(ctx context.Context) ([]dto.ProductResponse, error) {
	var cached []dto.ProductResponse
	if s.cache.Get(ctx, cache.FeaturedKey, &cached) {
		return cached, nil
	}
	items, err := s.repo.ListFeatured(ctx, model.FeaturedLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	s.cache.Set(ctx, cache.FeaturedKey, out)
	return out, nil
}

func (s *productService) NameExists(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.FindByName(ctx, name, true)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ── Mutations ────────────────────────────────────────────────────────────────

// Create runs the two-phase write: insert the record as pending so the store
// assigns its id, upload both images keyed by that id, then patch the record
// with the final URLs and flip it active. When an upload fails the record is
// marked failed instead of rolled back — the sweeper reaps it later.
func (s *productService) Create(ctx context.Context, in dto.CreateProductInput) (string, error) {
	if _, err := s.repo.FindByName(ctx, in.Name, false); err == nil {
		return "", ErrDuplicateName
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if _, err := s.repo.FindByName(ctx, in.Name, true); err == nil {
		return "", ErrDuplicateName
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	p := &model.Product{
		Name:   in.Name,
		Type:   in.Type,
		Color:  in.Color,
		Sizes:  in.Sizes,
		Status: model.StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return "", err
	}
	id := p.ID.Hex()

	frontURL, backURL, err := s.uploadImages(ctx, id, in.FrontImage, in.BackImage)
	if err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("image upload failed, marking record failed")
		if stErr := s.repo.SetStatus(ctx, id, model.StatusFailed); stErr != nil {
			log.Error().Err(stErr).Str("product_id", id).Msg("could not mark record failed")
		}
		return "", err
	}

	if err := s.repo.SetImages(ctx, id, frontURL, backURL, model.StatusActive); err != nil {
		return "", err
	}

	s.cache.Invalidate(ctx)
	return id, nil
}

func (s *productService) Update(ctx context.Context, id string, in dto.UpdateProductInput) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	frontURL := current.FrontImageURL
	backURL := current.BackImageURL
	if in.FrontImage != nil || in.BackImage != nil {
		newFront, newBack, err := s.uploadImages(ctx, id, in.FrontImage, in.BackImage)
		if err != nil {
			return err
		}
		if in.FrontImage != nil {
			s.deleteReplacedBlob(ctx, frontURL, newFront)
			frontURL = newFront
		}
		if in.BackImage != nil {
			s.deleteReplacedBlob(ctx, backURL, newBack)
			backURL = newBack
		}
	}

	current.Name = in.Name
	current.Type = in.Type
	current.Color = in.Color
	current.Sizes = in.Sizes
	current.FrontImageURL = frontURL
	current.BackImageURL = backURL
	// An edit that leaves a usable front image repairs records stranded in
	// pending/failed by an interrupted create — otherwise the sweeper would
	// reap the record along with its now-valid blobs.
	if frontURL != "" {
		current.Status = model.StatusActive
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort blob removal: parse failures and delete failures are
	// logged and swallowed — they never block record deletion.
	s.deleteBlobByURL(ctx, p.FrontImageURL)
	s.deleteBlobByURL(ctx, p.BackImageURL)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *productService) SetFeatured(ctx context.Context, id string, value bool) error {
	if err := s.repo.SetFeatured(ctx, id, value); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// uploadImages stores front/back blobs concurrently — both puts are initiated
// before either is awaited. Either image may be nil (its URL comes back "").
func (s *productService) uploadImages(ctx context.Context, id string, front, back *dto.ImageUpload) (string, string, error) {
	type result struct {
		url string
		err error
	}

	frontCh := make(chan result, 1)
	backCh := make(chan result, 1)

	put := func(side string, img *dto.ImageUpload, ch chan result) {
		if img == nil {
			ch <- result{}
			return
		}
		url, err := s.store.Put(ctx, ImageKey(id, side, img), img.Reader, img.ContentType)
		ch <- result{url: url, err: err}
	}

	go put("front", front, frontCh)
	go put("back", back, backCh)

	fr := <-frontCh
	br := <-backCh
	if fr.err != nil {
		return "", "", fr.err
	}
	if br.err != nil {
		return "", "", br.err
	}
	return fr.url, br.url, nil
}

func (s *productService) deleteBlobByURL(ctx context.Context, rawURL string) {
	if rawURL == "" {
		return
	}
	key, ok := s.store.KeyFromURL(rawURL)
	if !ok {
		log.Warn().Str("url", rawURL).Msg("could not recover storage key from url")
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("blob delete failed")
	}
}

// deleteReplacedBlob removes the previous blob when a replacement landed on a
// different key (an extension change; same-key uploads just overwrite).
func (s *productService) deleteReplacedBlob(ctx context.Context, oldURL, newURL string) {
	if oldURL == "" || oldURL == newURL {
		return
	}
	s.deleteBlobByURL(ctx, oldURL)
}

// ImageKey builds the deterministic blob key for a product image.
func ImageKey(id, side string, img *dto.ImageUpload) string {
	return "clothing/" + id + "_" + side + imageExt(img)
}

func imageExt(img *dto.ImageUpload) string {
	switch img.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return strings.ToLower(filepath.Ext(img.Filename))
}

func toResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID.Hex(),
		Name:          p.Name,
		Type:          p.Type,
		Color:         p.Color,
		Sizes:         p.SizeList(),
		FrontImageURL: p.FrontImageURL,
		BackImageURL:  p.BackImageURL,
		Destaque:      p.Destaque,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
