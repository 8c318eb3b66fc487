package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService lets each test script the service layer's behavior.
type stubService struct {
	listFn        func(f dto.ProductFilter) (*dto.ProductListResponse, error)
	getByIDFn     func(id string) (*dto.ProductResponse, error)
	featuredFn    func() ([]dto.ProductResponse, error)
	nameExistsFn  func(name string) (bool, error)
	createFn      func(in dto.CreateProductInput) (string, error)
	updateFn      func(id string, in dto.UpdateProductInput) error
	deleteFn      func(id string) error
	setFeaturedFn func(id string, value bool) error
}

func (s *stubService) List(_ context.Context, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	return s.listFn(f)
}
func (s *stubService) GetByID(_ context.Context, id string) (*dto.ProductResponse, error) {
	return s.getByIDFn(id)
}
func (s *stubService) ListFeatured(_ context.Context) ([]dto.ProductResponse, error) {
	return s.featuredFn()
}
func (s *stubService) NameExists(_ context.Context, name string) (bool, error) {
	return s.nameExistsFn(name)
}
func (s *stubService) Create(_ context.Context, in dto.CreateProductInput) (string, error) {
	return s.createFn(in)
}
func (s *stubService) Update(_ context.Context, id string, in dto.UpdateProductInput) error {
	return s.updateFn(id, in)
}
func (s *stubService) Delete(_ context.Context, id string) error {
	return s.deleteFn(id)
}
func (s *stubService) SetFeatured(_ context.Context, id string, value bool) error {
	return s.setFeaturedFn(id, value)
}

func newTestRouter(svc service.ProductService) *gin.Engine {
	h := NewProductsHandler(svc)
	r := gin.New()
	api := r.Group("/api/clothing")
	api.GET("/get", h.List)
	api.GET("/getById/:id", h.GetByID)
	api.GET("/featured", h.Featured)
	api.GET("/check-name", h.CheckName)
	api.POST("/create", h.Create)
	api.PUT("/update/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	api.PATCH("/:id/featured", h.SetFeatured)
	return r
}

// multipartBody builds a product form. Image fields map name→content type;
// bytes are padded per imageSizes when the default is too small.
func multipartBody(t *testing.T, fields map[string]string, sizes []string, images map[string]string, imageSizes map[string]int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, s := range sizes {
		require.NoError(t, w.WriteField("size", s))
	}
	for field, contentType := range images {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="img.bin"`)
		hdr.Set("Content-Type", contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		n := 32
		if imageSizes != nil && imageSizes[field] > 0 {
			n = imageSizes[field]
		}
		_, err = part.Write(bytes.Repeat([]byte{0xAB}, n))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

// ─── List ────────────────────────────────────────────────────────────────────

func TestListReturnsPageWithCursor(t *testing.T) {
	next := "66f0000000000000000000ff"
	svc := &stubService{
		listFn: func(f dto.ProductFilter) (*dto.ProductListResponse, error) {
			assert.Equal(t, "Liso", f.Type)
			assert.Equal(t, "40", f.Size)
			return &dto.ProductListResponse{
				Items:      []dto.ProductResponse{{ID: "abc", Name: "Vestido Aurora", Sizes: []string{"40"}}},
				NextCursor: &next,
			}, nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/clothing/get?type=Liso&size=40", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Vestido Aurora", resp.Items[0].Name)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, next, *resp.NextCursor)
}

func TestListLastPageSerializesNullCursor(t *testing.T) {
	svc := &stubService{
		listFn: func(dto.ProductFilter) (*dto.ProductListResponse, error) {
			return &dto.ProductListResponse{Items: []dto.ProductResponse{}}, nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/clothing/get", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"nextCursor":null}`, w.Body.String())
}

// ─── GetByID ─────────────────────────────────────────────────────────────────

func TestGetByIDNotFound(t *testing.T) {
	svc := &stubService{
		getByIDFn: func(string) (*dto.ProductResponse, error) {
			return nil, repository.ErrNotFound
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/clothing/getById/000000000000000000000000", nil, "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Vestido não encontrado.", detail(t, w))
}

// ─── CheckName ───────────────────────────────────────────────────────────────

func TestCheckName(t *testing.T) {
	svc := &stubService{
		nameExistsFn: func(name string) (bool, error) {
			return name == "Vestido Aurora", nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/clothing/check-name?name=Vestido+Aurora", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":true}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/clothing/check-name", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreateHappyPath(t *testing.T) {
	var got dto.CreateProductInput
	svc := &stubService{
		createFn: func(in dto.CreateProductInput) (string, error) {
			got = in
			return "66f00000000000000000000a", nil
		},
	}
	body, ct := multipartBody(t,
		map[string]string{"name": "Vestido Aurora", "type": "Todo bordado", "color": "Dourado"},
		[]string{"38", "40"},
		map[string]string{"frontImage": "image/jpeg", "backImage": "image/png"},
		nil,
	)
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/clothing/create", body, ct)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"id":"66f00000000000000000000a"}`, w.Body.String())
	assert.Equal(t, "Vestido Aurora", got.Name)
	assert.Equal(t, []string{"38", "40"}, got.Sizes)
	require.NotNil(t, got.FrontImage)
	assert.Equal(t, "image/jpeg", got.FrontImage.ContentType)
	require.NotNil(t, got.BackImage)
	assert.Equal(t, "image/png", got.BackImage.ContentType)
}

func TestCreateMissingFrontImage(t *testing.T) {
	svc := &stubService{
		createFn: func(dto.CreateProductInput) (string, error) {
			t.Fatal("service must not be called")
			return "", nil
		},
	}
	body, ct := multipartBody(t,
		map[string]string{"name": "Vestido Aurora", "type": "Liso", "color": "Azul"},
		[]string{"38"},
		nil, nil,
	)
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/clothing/create", body, ct)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Todos os campos são obrigatórios.", detail(t, w))
}

func TestCreateMalformedMultipartBody(t *testing.T) {
	svc := &stubService{
		createFn: func(dto.CreateProductInput) (string, error) {
			t.Fatal("service must not be called")
			return "", nil
		},
	}
	body := bytes.NewBufferString("isto não é um corpo multipart")
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/clothing/create", body, "multipart/form-data; boundary=xyz")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Requisição multipart inválida.", detail(t, w))
}

func TestCreateOversizedImage(t *testing.T) {
	svc := &stubService{
		createFn: func(dto.CreateProductInput) (string, error) {
			t.Fatal("service must not be called")
			return "", nil
		},
	}
	body, ct := multipartBody(t,
		map[string]string{"name": "Vestido Aurora", "type": "Liso", "color": "Azul"},
		[]string{"38"},
		map[string]string{"frontImage": "image/jpeg"},
		map[string]int{"frontImage": service.MaxImageBytes + 1},
	)
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/clothing/create", body, ct)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Imagem muito grande (máx. 10MB).", detail(t, w))
}

func TestCreateUnsupportedImageType(t *testing.T) {
	svc := &stubService{}
	body, ct := multipartBody(t,
		map[string]string{"name": "Vestido Aurora", "type": "Liso", "color": "Azul"},
		[]string{"38"},
		map[string]string{"frontImage": "image/gif"},
		nil,
	)
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/clothing/create", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDuplicateName(t *testing.T) {
	svc := &stubService{
		createFn: func(dto.CreateProductInput) (string, error) {
			return "", service.ErrDuplicateName
		},
	}
	body, ct := multipartBody(t,
		map[string]string{"name": "Vestido Aurora", "type": "Liso", "color": "Azul"},
		[]string{"38"},
		map[string]string{"frontImage": "image/jpeg"},
		nil,
	)
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/clothing/create", body, ct)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// ─── Update / Delete ─────────────────────────────────────────────────────────

func TestUpdateWithoutImagesKeepsThem(t *testing.T) {
	var got dto.UpdateProductInput
	svc := &stubService{
		updateFn: func(id string, in dto.UpdateProductInput) error {
			assert.Equal(t, "66f00000000000000000000a", id)
			got = in
			return nil
		},
	}
	body, ct := multipartBody(t,
		map[string]string{"name": "Vestido Rubi", "type": "Liso", "color": "Vermelho"},
		[]string{"40"},
		nil, nil,
	)
	w := doRequest(newTestRouter(svc), http.MethodPut, "/api/clothing/update/66f00000000000000000000a", body, ct)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got.FrontImage)
	assert.Nil(t, got.BackImage)
}

func TestDeleteSuccess(t *testing.T) {
	svc := &stubService{
		deleteFn: func(id string) error {
			assert.Equal(t, "66f00000000000000000000a", id)
			return nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodDelete, "/api/clothing/66f00000000000000000000a", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

// ─── SetFeatured ─────────────────────────────────────────────────────────────

func TestSetFeaturedLimitReached(t *testing.T) {
	svc := &stubService{
		setFeaturedFn: func(string, bool) error {
			return repository.ErrFeaturedLimit
		},
	}
	body := bytes.NewBufferString(`{"destaque":true}`)
	w := doRequest(newTestRouter(svc), http.MethodPatch, "/api/clothing/66f00000000000000000000a/featured", body, "application/json")

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Máximo de 3 itens em destaque permitidos.", detail(t, w))
}

func TestSetFeaturedMissingField(t *testing.T) {
	called := false
	svc := &stubService{
		setFeaturedFn: func(string, bool) error {
			called = true
			return nil
		},
	}
	body := bytes.NewBufferString(`{}`)
	w := doRequest(newTestRouter(svc), http.MethodPatch, "/api/clothing/66f00000000000000000000a/featured", body, "application/json")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, called)
}

func TestSetFeaturedFalseIsAlwaysAllowed(t *testing.T) {
	svc := &stubService{
		setFeaturedFn: func(_ string, value bool) error {
			assert.False(t, value)
			return nil
		},
	}
	body := bytes.NewBufferString(`{"destaque":false}`)
	w := doRequest(newTestRouter(svc), http.MethodPatch, "/api/clothing/66f00000000000000000000a/featured", body, "application/json")

	assert.Equal(t, http.StatusOK, w.Code)
}
