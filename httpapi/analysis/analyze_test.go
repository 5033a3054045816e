package analysisservice

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/config"
	"github.com/wrongbook/backend/internal/testhelper"
	"github.com/wrongbook/backend/models"
)

func setupTestRouter(t *testing.T, maxUploadBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{MaxUploadBytes: maxUploadBytes}
	service := NewAnalysisService(analysis.NewService(config.AnalysisConfig{
		DefaultLayout: "auto",
		DefaultSort:   "original",
		AnchorMarkers: []string{"正确答案"},
		ScanRows:      10,
		FixedOffset:   15,
	}, nil), cfg)

	router := gin.New()
	service.Register(router.Group("/api"))
	return router
}

func multipartRequest(t *testing.T, path string, file []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if file != nil {
		part, err := writer.CreateFormFile("file", "quiz.xlsx")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAnalysisService_Analyze(t *testing.T) {
	router := setupTestRouter(t, 10<<20)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis",
			testhelper.NewWorkbook(t, testhelper.ColumnSuffixRows()),
			map[string]string{"sort": "accuracy_asc", "teacher": "全部"},
		))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report models.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "quiz.xlsx", report.FileName)
		assert.Equal(t, "column-suffix", report.Layout)
		assert.Equal(t, "accuracy_asc", report.Sort)
		require.Len(t, report.Questions, 2)
		assert.Equal(t, 2, report.Questions[0].Number)
		assert.Equal(t, 50.0, report.Questions[0].Statistics.Accuracy)
		assert.Equal(t, []string{"王老师", "刘老师"}, report.Filters.Teachers)
	})

	t.Run("filtered by class", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis",
			testhelper.NewWorkbook(t, testhelper.ColumnSuffixRows()),
			map[string]string{"class": "一班"},
		))

		require.Equal(t, http.StatusOK, w.Code)

		var report models.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Rows)
		assert.Equal(t, "一班", report.Filter.Class)
	})

	t.Run("missing file", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis", nil, map[string]string{"layout": "row-scan"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CodeBadRequest, decodeError(t, w)["code"])
	})

	t.Run("invalid options", func(t *testing.T) {
		for _, fields := range []map[string]string{
			{"layout": "pivot"},
			{"sort": "random"},
			{"fold_case": "maybe"},
		} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest(t, "/api/analysis",
				testhelper.NewWorkbook(t, testhelper.ColumnSuffixRows()), fields))

			assert.Equal(t, http.StatusBadRequest, w.Code, fields)
			assert.Equal(t, CodeBadRequest, decodeError(t, w)["code"], fields)
		}
	})

	t.Run("not a spreadsheet", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis", []byte("hello"), nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, CodeLoadError, decodeError(t, w)["code"])
	})

	t.Run("anchor not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis",
			testhelper.NewWorkbook(t, [][]string{{"学号", "姓名", "Q1"}, {"1", "a", "A"}}), nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, CodeAnchorNotFound, body["code"])
		assert.Contains(t, body["detail"], "正确答案")
	})

	t.Run("missing name column", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis",
			testhelper.NewWorkbook(t, [][]string{{"学号", "试题1", "回答1", "标准答案1"}, {"1", "q", "A", "A"}}), nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, CodeMissingNameColumn, decodeError(t, w)["code"])
	})

	t.Run("no questions lists the skipped ones", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis",
			testhelper.NewWorkbook(t, testhelper.ColumnSuffixRows()),
			map[string]string{"teacher": "李老师"},
		))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, CodeNoQuestions, body["code"])
		assert.Len(t, body["skipped"], 2)
	})
}

func TestAnalysisService_UploadLimit(t *testing.T) {
	router := setupTestRouter(t, 1024)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/analysis", bytes.Repeat([]byte("x"), 4096), nil))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, CodeFileTooLarge, decodeError(t, w)["code"])
}

func TestAnalysisService_Filters(t *testing.T) {
	router := setupTestRouter(t, 10<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/analysis/filters",
		testhelper.NewWorkbook(t, testhelper.ColumnSuffixRows()), nil))

	require.Equal(t, http.StatusOK, w.Code)

	var filters models.Filters
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filters))
	assert.Equal(t, []string{"一班", "二班"}, filters.Classes)
	assert.Equal(t, []string{"一班"}, filters.ClassesByTeacher["刘老师"])

	t.Run("without teacher columns", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "/api/analysis/filters",
			testhelper.NewWorkbook(t, testhelper.RowScanRows()), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"teachers":[],"classes":[],"classesByTeacher":{}}`, w.Body.String())
	})
}
