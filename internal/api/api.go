// Package api contains the HTTP API server.
package api

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bluenviron/mediaprobe/internal/extractor"
	"github.com/bluenviron/mediaprobe/internal/logger"
	"github.com/bluenviron/mediaprobe/internal/probe"
)

type apiError struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type apiInfo struct {
	Version string    `json:"version"`
	Started time.Time `json:"started"`
}

type apiFormat struct {
	Name           string   `json:"name"`
	MimeTypes      []string `json:"mimeTypes"`
	MuxedSubtitles bool     `json:"muxedSubtitles"`
}

type apiProbeResult struct {
	ID string `json:"id"`
	*extractor.Info
}

type apiParent interface {
	logger.Writer
}

// API is an HTTP API server.
type API struct {
	Version string
	Started time.Time
	Address string
	Prober  *probe.Prober
	Parent  apiParent

	ln         net.Listener
	httpServer *http.Server
}

// Initialize initializes API.
func (a *API) Initialize() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	group := router.Group("/v1")

	group.GET("/info", a.onInfo)
	group.GET("/formats", a.onFormatsList)
	group.POST("/probe", a.onProbe)

	var err error
	a.ln, err = net.Listen("tcp", a.Address)
	if err != nil {
		return err
	}

	a.httpServer = &http.Server{
		Handler:     router,
		IdleTimeout: 30 * time.Second,
	}
	go a.httpServer.Serve(a.ln) //nolint:errcheck

	a.Log(logger.Info, "listener opened on "+a.Address)

	return nil
}

// Close closes the API.
func (a *API) Close() {
	a.Log(logger.Info, "listener is closing")
	a.httpServer.Close() //nolint:errcheck
}

// Log implements logger.Writer.
func (a *API) Log(level logger.Level, format string, args ...interface{}) {
	a.Parent.Log(level, "[API] "+format, args...)
}

func (a *API) writeError(ctx *gin.Context, status int, err error) {
	// show error in logs
	a.Log(logger.Error, err.Error())

	// add error to response
	ctx.JSON(status, &apiError{
		Status: "error",
		Error:  err.Error(),
	})
}

func (a *API) onInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &apiInfo{
		Version: a.Version,
		Started: a.Started,
	})
}

func (a *API) onFormatsList(ctx *gin.Context) {
	descriptors := extractor.DefaultOrder()

	out := make([]apiFormat, len(descriptors))
	for i, d := range descriptors {
		out[i] = apiFormat{
			Name:           d.Name,
			MimeTypes:      d.MimeTypes,
			MuxedSubtitles: d.MuxedSubtitles,
		}
	}

	ctx.JSON(http.StatusOK, out)
}

func (a *API) onProbe(ctx *gin.Context) {
	id := uuid.New().String()

	// the request URI and headers act as format hints, the body is
	// the stream prefix to probe.
	body := io.LimitReader(ctx.Request.Body, int64(a.Prober.MaxHeaderSize))

	info, err := a.Prober.Probe(body, ctx.Query("uri"), ctx.Request.Header)
	if err != nil {
		if errors.Is(err, extractor.ErrUnrecognizedFormat) {
			a.writeError(ctx, http.StatusUnsupportedMediaType, err)
		} else {
			a.writeError(ctx, http.StatusBadRequest, err)
		}
		return
	}

	a.Log(logger.Info, "[probe %s] detected format '%s'", id, info.Format)

	ctx.JSON(http.StatusOK, &apiProbeResult{
		ID:   id,
		Info: info,
	})
}
