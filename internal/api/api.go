// Package api exposes a local HTTP surface for inspecting the collector:
// health, status, producers, run history and the written documents. It reads
// the local filesystem only; nothing is shipped anywhere.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sliink/expcollect/internal/api/docs"
	"github.com/sliink/expcollect/internal/core"
	"github.com/sliink/expcollect/internal/model"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// API represents the REST API for the experiment collector
type API struct {
	core   *core.Core
	router *gin.Engine
	server *http.Server
	port   int
	host   string
}

// NewAPI creates a new API instance
// @title           Experiment Collector API
// @version         1.0
// @description     Local inspection API for the experiment data collector

// @host      localhost:8088
// @BasePath  /
func NewAPI(c *core.Core, port int, host string) *API {
	docs.SwaggerInfo.Title = "Experiment Collector API"
	docs.SwaggerInfo.Description = "Local inspection API for the experiment data collector"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", host, port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	router := gin.Default()

	api := &API{
		core:   c,
		router: router,
		port:   port,
		host:   host,
	}

	api.setupRoutes()

	return api
}

// setupRoutes configures all the API routes
func (a *API) setupRoutes() {
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/status", a.getStatus)
	a.router.GET("/producers", a.getProducers)

	documents := a.router.Group("/documents")
	{
		documents.GET("", a.getDocuments)
		documents.GET("/:name", a.getDocumentByName)
	}

	a.router.GET("/runs", a.getRuns)
	a.router.POST("/run", a.triggerRun)
	a.router.GET("/config", a.getConfig)

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Start starts the API server
func (a *API) Start() error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.router,
	}

	return a.server.ListenAndServe()
}

// Stop stops the API server
func (a *API) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Router returns the underlying gin engine, used by tests
func (a *API) Router() http.Handler {
	return a.router
}

// healthCheck handles GET /health
// @Summary      Health check
// @Description  Check if the collector and its components are healthy
// @Tags         system
// @Produce      json
// @Success      200  {object}  model.HealthStatus
// @Router       /health [get]
func (a *API) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, a.core.GetHealthMonitor().GetHealthStatus())
}

// getStatus handles GET /status
// @Summary      Get system status
// @Description  Get the status of the collector, its producers and metrics
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /status [get]
func (a *API) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, a.core.GetSystemStatus())
}

// getProducers handles GET /producers
// @Summary      Get all producers
// @Description  Get information about all registered producers
// @Tags         producers
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /producers [get]
func (a *API) getProducers(c *gin.Context) {
	status := a.core.GetSystemStatus()
	c.JSON(http.StatusOK, status["producers"])
}

// getDocuments handles GET /documents
// @Summary      List written documents
// @Description  List the documents currently present in the output directory
// @Tags         documents
// @Produce      json
// @Success      200  {array}   model.DocumentInfo
// @Failure      500  {object}  map[string]interface{}
// @Router       /documents [get]
func (a *API) getDocuments(c *gin.Context) {
	docs, err := a.core.ListDocuments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if docs == nil {
		docs = []model.DocumentInfo{}
	}
	c.JSON(http.StatusOK, docs)
}

// getDocumentByName handles GET /documents/:name
// @Summary      Get a written document
// @Description  Read and parse a single document from the output directory
// @Tags         documents
// @Produce      json
// @Param        name  path  string  true  "Document name"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /documents/{name} [get]
func (a *API) getDocumentByName(c *gin.Context) {
	content, err := a.core.ReadDocument(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, content)
}

// getRuns handles GET /runs
// @Summary      Get run history
// @Description  Get recent collection run reports, newest first
// @Tags         runs
// @Produce      json
// @Success      200  {array}  model.RunReport
// @Router       /runs [get]
func (a *API) getRuns(c *gin.Context) {
	c.JSON(http.StatusOK, a.core.GetHistory().Recent(0))
}

// triggerRun handles POST /run
// @Summary      Trigger a collection run
// @Description  Execute every registered producer once and report the outcome
// @Tags         runs
// @Produce      json
// @Success      200  {object}  model.RunReport
// @Failure      502  {object}  model.RunReport
// @Router       /run [post]
func (a *API) triggerRun(c *gin.Context) {
	report := a.core.Run()
	status := http.StatusOK
	if !report.Succeeded() {
		status = http.StatusBadGateway
	}
	c.JSON(status, report)
}

// getConfig handles GET /config
// @Summary      Get configuration
// @Description  Get the collector's current configuration
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /config [get]
func (a *API) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, a.core.GetConfigManager().GetConfig("", map[string]interface{}{}))
}
