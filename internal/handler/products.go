package handler

import (
	"io"
	"net/http"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/apierror"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List serves GET /api/clothing/get — the cursor-paginated public catalog.
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("ID do produto é obrigatório"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Featured serves the up-to-3 highlighted dresses for the landing page.
func (h *ProductsHandler) Featured(c *gin.Context) {
	items, err := h.svc.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CheckName lets the admin form test name availability before submitting.
func (h *ProductsHandler) CheckName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetro name é obrigatório"))
		return
	}
	exists, err := h.svc.NameExists(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NameExistsResponse{Exists: exists})
}

// Create serves POST /api/clothing/create (multipart form).
func (h *ProductsHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	typ := c.PostForm("type")
	color := c.PostForm("color")
	sizes := formSizes(c)

	front, frontCloser, err := formImage(c, "frontImage")
	if err != nil {
		respondError(c, err)
		return
	}
	if frontCloser != nil {
		defer frontCloser.Close()
	}
	back, backCloser, err := formImage(c, "backImage")
	if err != nil {
		respondError(c, err)
		return
	}
	if backCloser != nil {
		defer backCloser.Close()
	}

	if name == "" || typ == "" || color == "" || len(sizes) == 0 || front == nil {
		c.JSON(http.StatusBadRequest, apierror.New("Todos os campos são obrigatórios."))
		return
	}

	id, err := h.svc.Create(c.Request.Context(), dto.CreateProductInput{
		Name:       name,
		Type:       typ,
		Color:      color,
		Sizes:      sizes,
		FrontImage: front,
		BackImage:  back,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateProductResponse{Success: true, ID: id})
}

// Update serves PUT /api/clothing/update/:id. Either image may be omitted,
// in which case the existing URL is kept.
func (h *ProductsHandler) Update(c *gin.Context) {
	id := c.Param("id")

	name := c.PostForm("name")
	typ := c.PostForm("type")
	color := c.PostForm("color")
	sizes := formSizes(c)

	if name == "" || typ == "" || color == "" || len(sizes) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Campos obrigatórios faltando."))
		return
	}

	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()

	front, frontCloser, err := formImage(c, "frontImage")
	if err != nil {
		respondError(c, err)
		return
	}
	if frontCloser != nil {
		closers = append(closers, frontCloser)
	}
	back, backCloser, err := formImage(c, "backImage")
	if err != nil {
		respondError(c, err)
		return
	}
	if backCloser != nil {
		closers = append(closers, backCloser)
	}

	err = h.svc.Update(c.Request.Context(), id, dto.UpdateProductInput{
		Name:       name,
		Type:       typ,
		Color:      color,
		Sizes:      sizes,
		FrontImage: front,
		BackImage:  back,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Delete removes the record and makes a best-effort attempt at both blobs.
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// SetFeatured serves PATCH /api/clothing/:id/featured. The 3-item cap is
// enforced by the store transaction, not by the client.
func (h *ProductsHandler) SetFeatured(c *gin.Context) {
	var req dto.SetFeaturedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetFeatured(c.Request.Context(), c.Param("id"), *req.Destaque); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
