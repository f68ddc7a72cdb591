package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	ledgerSvc "inventify.GO/service/ledger"
)

// ErrorJSON maps ledger error kinds to HTTP status codes so the excluded UI
// can tell every failure class apart.
func ErrorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledgerSvc.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ledgerSvc.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledgerSvc.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, ledgerSvc.ErrInsufficientBatchStock):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ledgerSvc.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
