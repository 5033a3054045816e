package analysisservice

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
	"github.com/wrongbook/backend/internal/sheet"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("wrongbook.httpapi.analysis")

const (
	CodeLoadError         = "LOAD_ERROR"
	CodeAnchorNotFound    = "ANCHOR_NOT_FOUND"
	CodeMissingNameColumn = "MISSING_NAME_COLUMN"
	CodeNoQuestions       = "NO_QUESTIONS"
	CodeBadRequest        = "BAD_REQUEST"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// classify maps an analysis error to its HTTP status, code and message.
func classify(err error) (int, string, string) {
	var (
		loadErr   *sheet.LoadError
		anchorErr *engine.AnchorNotFoundError
		nameErr   *engine.MissingNameColumnError
	)

	switch {
	case errors.As(err, &loadErr):
		return http.StatusUnprocessableEntity, CodeLoadError, "The file could not be read as a spreadsheet."
	case errors.As(err, &anchorErr):
		return http.StatusUnprocessableEntity, CodeAnchorNotFound, "No standard-answer row was found. Check that the file contains a standard-answer row."
	case errors.As(err, &nameErr):
		return http.StatusUnprocessableEntity, CodeMissingNameColumn, "No student name column was found."
	case errors.Is(err, engine.ErrNoQuestions):
		return http.StatusUnprocessableEntity, CodeNoQuestions, "No question could be analyzed."
	case errors.Is(err, analysis.ErrInvalidRequest):
		return http.StatusBadRequest, CodeBadRequest, "Invalid analysis options."
	default:
		return http.StatusInternalServerError, CodeInternalError, "Failed to analyze the file. Please try again later."
	}
}

func errorBody(code, message string, err error) gin.H {
	body := gin.H{
		"error": message,
		"code":  code,
	}
	if err != nil {
		body["detail"] = err.Error()
	}

	return body
}

func writeError(c *gin.Context, status int, code, message string, err error) {
	c.JSON(status, errorBody(code, message, err))
}
