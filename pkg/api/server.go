// Package api provides the REST API server for sf2sfz
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/james-see/sf2sfz/pkg/converter"
	"github.com/james-see/sf2sfz/pkg/soundfont"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title sf2sfz API
// @version 1.0
// @description API for converting SoundFont banks into SFZ instruments with WAV samples
// @host localhost:8080
// @BasePath /api/v1

// maxUploadBytes bounds the size of an uploaded bank
const maxUploadBytes = 512 << 20

// StartServer starts the API server on the specified port
func StartServer(port int, logger *slog.Logger) error {
	return NewRouter(logger).Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with every route registered
func NewRouter(logger *slog.Logger) *gin.Engine {
	h := &handlers{log: logger}

	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/formats", listFormats)
		v1.POST("/inspect", h.handleInspect)
		v1.POST("/convert", h.handleConvert)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

type handlers struct {
	log *slog.Logger
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sf2sfz",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns the accepted input formats and the produced output formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats": converter.GetSupportedFormats(),
		"outputs": []string{"sfz", "wav", "zip", "mid"},
	})
}

// handleInspect godoc
// @Summary Inspect a SoundFont bank
// @Description Upload an .sf2 or .sf3 bank and receive its presets, instruments and samples
// @Tags inspect
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "SoundFont bank"
// @Success 200 {object} converter.BankSummary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/inspect [post]
func (h *handlers) handleInspect(c *gin.Context) {
	data, _, ok := readUpload(c)
	if !ok {
		return
	}

	sf, err := soundfont.Decode(data, soundfont.WithLogger(h.log))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, converter.Inspect(sf))
}

// handleConvert godoc
// @Summary Convert a SoundFont bank to SFZ
// @Description Upload an .sf2 or .sf3 bank and receive a zip with one SFZ per preset and its WAV samples
// @Tags convert
// @Accept multipart/form-data
// @Produce application/zip
// @Param file formData file true "SoundFont bank"
// @Param name query string false "Base name for documents and sample folders (default: uploaded file name)"
// @Param preview query bool false "Add a MIDI audition file per preset"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/convert [post]
func (h *handlers) handleConvert(c *gin.Context) {
	data, filename, ok := readUpload(c)
	if !ok {
		return
	}

	baseName := c.Query("name")
	if baseName == "" {
		baseName = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	preview, _ := strconv.ParseBool(c.DefaultQuery("preview", "false"))

	conv := converter.New(converter.Options{
		BaseName: baseName,
		Logger:   h.log,
		Preview:  preview,
	})
	result, err := conv.Convert(data)
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := result.WriteZip(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.BaseName+".zip"))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// readUpload reads the multipart "file" field. On failure it writes the
// error response and returns false.
func readUpload(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, "", false
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return nil, "", false
	}
	return data, filepath.Base(header.Filename), true
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, soundfont.ErrFormat) {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
