package resource

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"github.com/tripdesk/crm-admin/internal/pkg/priceformat"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// ErrBadInput marks request errors that are the caller's fault.
var ErrBadInput = errors.New("bad input")

// IsBadInput reports whether err should be answered with 400.
func IsBadInput(err error) bool {
	var decodeErr *form.DecodeError
	return errors.As(err, &decodeErr) ||
		errors.Is(err, ErrBadInput) ||
		errors.Is(err, blob.ErrRejected) ||
		errors.Is(err, models.ErrUnknownField) ||
		errors.Is(err, models.ErrNegativeAmount) ||
		errors.Is(err, models.ErrInvalidValue) ||
		errors.Is(err, priceformat.ErrInvalidPrice) ||
		errors.Is(err, editor.ErrUnknownSection)
}

// WriteError maps service errors onto the response envelope.
func WriteError(c *gin.Context, err error) {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Errors, verr.FirstField)
	case errors.Is(err, editor.ErrNotFound):
		response.NotFoundMsg(c, err.Error())
	case IsBadInput(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
