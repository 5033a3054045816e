// analysisservice provides the spreadsheet analysis endpoints.
package analysisservice

import (
	"github.com/gin-gonic/gin"
	"github.com/wrongbook/backend/httpapi"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/config"
	"github.com/wrongbook/backend/internal/httputils"
)

type AnalysisService struct {
	analysis       *analysis.Service
	maxUploadBytes int64
}

func NewAnalysisService(analysis *analysis.Service, cfg config.Config) *AnalysisService {
	return &AnalysisService{
		analysis:       analysis,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

func (s *AnalysisService) Register(router gin.IRouter) {
	group := router.Group("/analysis")
	group.Use(httputils.BodyLimitMiddleware(s.maxUploadBytes))

	group.POST("", s.Analyze)
	group.POST("/filters", s.Filters)
}

var _ httpapi.Service = (*AnalysisService)(nil)
