package dto

import "io"

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter carries the query parameters of GET /api/clothing/get.
// Cursor is the id of the last item of the previous page; empty means page one.
type ProductFilter struct {
	Cursor string `form:"cursor"`
	Type   string `form:"type"`
	Color  string `form:"color"`
	Size   string `form:"size"`
	Search string `form:"search"`
}

// ─── Upload payloads ─────────────────────────────────────────────────────────

// ImageUpload is a validated multipart file ready to be stored.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type CreateProductInput struct {
	Name       string
	Type       string
	Color      string
	Sizes      []string
	FrontImage *ImageUpload
	BackImage  *ImageUpload
}

// UpdateProductInput mirrors CreateProductInput, but either image may be nil,
// meaning "keep the URL already on the record".
type UpdateProductInput struct {
	Name       string
	Type       string
	Color      string
	Sizes      []string
	FrontImage *ImageUpload
	BackImage  *ImageUpload
}

// SetFeaturedRequest toggles the destaque flag (JSON body of the PATCH route).
type SetFeaturedRequest struct {
	Destaque *bool `json:"destaque" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Color         string   `json:"color"`
	Sizes         []string `json:"sizes"`
	FrontImageURL string   `json:"frontImageUrl"`
	BackImageURL  string   `json:"backImageUrl"`
	Destaque      bool     `json:"destaque"`
	CreatedAt     string   `json:"createdAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

type CreateProductResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type NameExistsResponse struct {
	Exists bool `json:"exists"`
}

// SiteConfigResponse exposes the public site settings the frontend needs.
type SiteConfigResponse struct {
	WhatsAppNumber string `json:"whatsappNumber"`
	PublicBaseURL  string `json:"publicBaseUrl"`
}
