package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsxjacky/Drawdown-backtest/internal/engine"
	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// NewRouter 构建HTTP路由
func NewRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate/rebalance", handleRebalance)
		v1.POST("/simulate/margin", handleMargin)
	}

	return router
}

// handleRebalance 再平衡模拟接口
func handleRebalance(c *gin.Context) {
	var params types.RebalanceParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.SimulateRebalance(params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleMargin 融资买入模拟接口
func handleMargin(c *gin.Context) {
	var params types.MarginParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.SimulateMargin(params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// statusFor 将核心错误映射为HTTP状态码
func statusFor(err error) int {
	if errors.Is(err, types.ErrInvalidParameter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
