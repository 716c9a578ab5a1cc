package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/internal/pipeline"
	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// Client-facing error messages. Upstream details stay in the logs.
const (
	msgAssetRequired  = "asset query parameter is required"
	msgInvalidPrice   = "priceChange must be a number"
	msgUpstreamFailed = "failed to fetch news from upstream sources"
	msgInternalError  = "internal server error"
)

// handleNews serves GET /api/news?asset=SYM&priceChange=N
func (s *Server) handleNews(c *gin.Context) {
	q, err := models.NewQuery(c.Query("asset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgAssetRequired})
		return
	}

	req := pipeline.Request{Query: q}

	if raw := strings.TrimSpace(c.Query("priceChange")); raw != "" {
		change, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidPrice})
			return
		}
		req.PriceChange = &change
	}

	result, err := s.digester.Run(c.Request.Context(), req)
	if err != nil {
		logger.Error("news digest failed",
			zap.String("asset", q.Symbol),
			zap.Error(err),
		)

		msg := msgInternalError
		if errors.Is(err, pipeline.ErrUpstreamUnavailable) {
			msg = msgUpstreamFailed
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, result)
}
