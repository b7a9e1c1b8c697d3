// Package mockapi is a fake todos server speaking the same REST schema as
// the real one. It backs the tada-mock command and end-to-end tests.
package mockapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Makepad-fr/tada/internal/api"
	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/metrics"
)

// ForceStatusHeader makes the server answer with the given status code
// instead of handling the request.
const ForceStatusHeader = "X-Mock-Status"

// NewRouter registers the todo routes and /metrics. A nil reg gets a
// private registry. Extra middleware runs before fault injection.
func NewRouter(s *Store, reg *prom.Registry, mw ...gin.HandlerFunc) *gin.Engine {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	requests := prom.NewCounterVec(prom.CounterOpts{
		Namespace: "tada",
		Subsystem: "mock",
		Name:      "requests_total",
		Help:      "Requests served by the mock todo API",
	}, []string{"method", "route", "status"})
	reg.MustRegister(requests)

	r := gin.New()
	r.Use(gin.Recovery(), countRequests(requests))
	r.Use(mw...)
	r.Use(forceStatus())

	h := &handler{store: s}
	r.GET("/todos", h.list)
	r.GET("/todos/:id", h.get)
	r.POST("/todos", h.create)
	r.PUT("/todos/:id", h.update)
	r.DELETE("/todos/:id", h.delete)
	r.GET("/metrics", gin.WrapH(metrics.HTTPHandler(reg)))
	return r
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			logfields.Method(c.Request.Method),
			logfields.Path(c.Request.URL.Path),
			logfields.Status(c.Writer.Status()),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
			logfields.RequestID(c.GetHeader(api.RequestIDHeader)),
		)
	}
}

func countRequests(c *prom.CounterVec) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
	}
}

func forceStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := ctx.GetHeader(ForceStatusHeader)
		if raw == "" {
			ctx.Next()
			return
		}
		code, err := strconv.Atoi(raw)
		if err != nil || code < 100 || code > 599 {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + ForceStatusHeader})
			return
		}
		ctx.AbortWithStatusJSON(code, gin.H{"error": http.StatusText(code)})
	}
}

type handler struct {
	store *Store
}

func (h *handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

func (h *handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.store.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) create(c *gin.Context) {
	req, ok := bindTodo(c)
	if !ok {
		return
	}
	t, err := h.store.Create(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindTodo(c)
	if !ok {
		return
	}
	t, err := h.store.Update(id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

func bindTodo(c *gin.Context) (api.TodoRequest, bool) {
	var req api.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title is required"})
		return req, false
	}
	return req, true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
