package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/apierror"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	errImageTooLarge    = errors.New("Imagem muito grande (máx. 10MB).")
	errImageUnsupported = errors.New("Formato de imagem não suportado (use JPEG, PNG ou WebP).")
	errFormInvalid      = errors.New("Requisição multipart inválida.")
)

// bindAndValidate binds a JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// formImage extracts and validates one multipart image field. A missing file
// is not an error — it returns (nil, nil, nil) so optional images work.
// The returned closer must be closed by the caller after the service call.
func formImage(c *gin.Context, field string) (*dto.ImageUpload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		// A body that cannot be parsed as multipart is a client error, not
		// an absent optional field.
		return nil, nil, errFormInvalid
	}
	if fh.Size > service.MaxImageBytes {
		return nil, nil, errImageTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if !service.AllowedImageTypes[contentType] {
		return nil, nil, errImageUnsupported
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &dto.ImageUpload{
		Reader:      f,
		Size:        fh.Size,
		ContentType: contentType,
		Filename:    fh.Filename,
	}, f, nil
}

// formSizes collects the repeated "size" fields, trimming and dropping blanks.
func formSizes(c *gin.Context) []string {
	raw := c.PostFormArray("size")
	sizes := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// respondError maps service/repository errors onto HTTP status codes and
// user-facing messages.
func respondError(c *gin.Context, err error) {
	var idxErr *repository.IndexRequiredError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Vestido não encontrado."))
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, apierror.New("Já existe um vestido com esse nome."))
	case errors.Is(err, repository.ErrFeaturedLimit):
		c.JSON(http.StatusConflict, apierror.New("Máximo de 3 itens em destaque permitidos."))
	case errors.Is(err, errImageTooLarge), errors.Is(err, errImageUnsupported), errors.Is(err, errFormInvalid):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &idxErr):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New(idxErr.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}
