package analysisservice

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
	"github.com/wrongbook/backend/internal/httputils"
	"github.com/wrongbook/backend/models"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
)

// Analyze analyzes the uploaded spreadsheet.
// POST /api/analysis
//
// Form fields: file (required), layout, sort, teacher, class, fold_case, collapse_space.
func (s *AnalysisService) Analyze(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Analyze")
	defer span.End()

	upload, ok := s.openUpload(c)
	if !ok {
		span.SetStatus(otelcodes.Error, "Invalid upload")
		return
	}
	defer upload.Close()

	req, err := bindRequest(c)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Invalid form fields")
		writeError(c, http.StatusBadRequest, CodeBadRequest, "Invalid analysis options.", err)
		return
	}
	req.FileName = upload.name
	req.Caller = httputils.GetMachineName(ctx)

	span.SetAttributes(
		attribute.String("analysis.file", req.FileName),
		attribute.String("analysis.layout", req.Layout),
		attribute.String("analysis.sort", req.Sort),
	)

	report, err := s.analysis.Analyze(ctx, upload, req)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Analysis failed")
		span.RecordError(err)

		status, code, message := classify(err)
		body := errorBody(code, message, err)
		if report != nil {
			body["skipped"] = models.NewReport(report).Skipped
		}
		c.JSON(status, body)
		return
	}

	span.SetStatus(otelcodes.Ok, "Analysis completed")
	c.JSON(http.StatusOK, models.NewReport(report))
}

// Filters lists the teachers and classes of the uploaded spreadsheet.
// POST /api/analysis/filters
func (s *AnalysisService) Filters(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Filters")
	defer span.End()

	upload, ok := s.openUpload(c)
	if !ok {
		span.SetStatus(otelcodes.Error, "Invalid upload")
		return
	}
	defer upload.Close()

	filters, err := s.analysis.Filters(ctx, upload, analysis.Request{
		FileName: upload.name,
		Caller:   httputils.GetMachineName(ctx),
	})
	if err != nil {
		span.SetStatus(otelcodes.Error, "Failed to list filters")
		span.RecordError(err)

		status, code, message := classify(err)
		writeError(c, status, code, message, err)
		return
	}

	span.SetStatus(otelcodes.Ok, "Filters listed")
	c.JSON(http.StatusOK, models.NewFilters(filters))
}

type upload struct {
	multipart.File
	name string
}

// openUpload opens the "file" form field, writing the error response itself
// when it cannot.
func (s *AnalysisService) openUpload(c *gin.Context) (*upload, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(c, http.StatusRequestEntityTooLarge, CodeFileTooLarge,
				fmt.Sprintf("The file exceeds the upload limit of %d bytes.", s.maxUploadBytes), err)
			return nil, false
		}

		writeError(c, http.StatusBadRequest, CodeBadRequest, "A spreadsheet must be uploaded in the \"file\" field.", err)
		return nil, false
	}

	if header.Size > s.maxUploadBytes {
		writeError(c, http.StatusRequestEntityTooLarge, CodeFileTooLarge,
			fmt.Sprintf("The file exceeds the upload limit of %d bytes.", s.maxUploadBytes), nil)
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		writeError(c, http.StatusInternalServerError, CodeInternalError, "Failed to read the uploaded file.", err)
		return nil, false
	}

	return &upload{File: f, name: header.Filename}, true
}

func bindRequest(c *gin.Context) (analysis.Request, error) {
	req := analysis.Request{
		Layout: c.PostForm("layout"),
		Sort:   c.PostForm("sort"),
		Filter: engine.Filter{
			Teacher: c.PostForm("teacher"),
			Class:   c.PostForm("class"),
		},
	}

	if _, err := engine.ParseLayoutKind(req.Layout); err != nil {
		return analysis.Request{}, err
	}
	if _, err := engine.ParseSortOrder(req.Sort); err != nil {
		return analysis.Request{}, err
	}

	var err error
	if req.FoldCase, err = optionalBool(c, "fold_case"); err != nil {
		return analysis.Request{}, err
	}
	if req.CollapseSpace, err = optionalBool(c, "collapse_space"); err != nil {
		return analysis.Request{}, err
	}

	return req, nil
}

func optionalBool(c *gin.Context, field string) (*bool, error) {
	raw, ok := c.GetPostForm(field)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	return &v, nil
}

