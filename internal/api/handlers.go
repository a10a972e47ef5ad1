package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CoinSentinel/internal/holdings"
)

func (s *Server) getAssetRisk(c *gin.Context) {
	assetID := strings.ToLower(c.Param("id"))
	analysis, err := s.Service.AssetRisk(c.Request.Context(), assetID)
	if err != nil {
		s.upstreamError(c, assetID, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) getAssetTrend(c *gin.Context) {
	assetID := strings.ToLower(c.Param("id"))
	trend, err := s.Service.AssetTrend(c.Request.Context(), assetID)
	if err != nil {
		s.upstreamError(c, assetID, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (s *Server) getAssetDCA(c *gin.Context) {
	assetID := strings.ToLower(c.Param("id"))
	analysis, err := s.Service.AssetDCA(c.Request.Context(), assetID)
	if err != nil {
		s.upstreamError(c, assetID, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) getPortfolioRisk(c *gin.Context) {
	summary, totalValue, err := s.Service.PortfolioSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":     summary,
		"total_value": totalValue,
	})
}

type holdingRequest struct {
	AssetID     string  `json:"asset_id" binding:"required"`
	Symbol      string  `json:"symbol" binding:"required"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

type holdingUpdateRequest struct {
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

func (s *Server) listHoldings(c *gin.Context) {
	c.JSON(http.StatusOK, s.Service.Holdings.List())
}

func (s *Server) createHolding(c *gin.Context) {
	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := s.Service.Holdings.Add(strings.ToLower(req.AssetID), req.Symbol, req.Name, req.Quantity, req.AvgBuyPrice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h)
}

func (s *Server) updateHolding(c *gin.Context) {
	var req holdingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := s.Service.Holdings.Update(c.Param("id"), req.Quantity, req.AvgBuyPrice)
	if err != nil {
		if errors.Is(err, holdings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h)
}

func (s *Server) deleteHolding(c *gin.Context) {
	if err := s.Service.Holdings.Remove(c.Param("id")); err != nil {
		if errors.Is(err, holdings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) upstreamError(c *gin.Context, assetID string, err error) {
	s.log.WithError(err).WithField("asset", assetID).Warn("asset analysis failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "asset": assetID})
}
