// =============================================================================
// PO Tracker - HTTP Surface
// =============================================================================
//
// Small gin server fronting the import pipeline for browser clients:
//
//   POST /api/import/purchase-orders   multipart upload -> import outcome
//   POST /api/import/shipments         multipart upload -> import outcome
//   GET  /api/templates/:flow          xlsx template download
//   GET  /healthz
//
// The server owns no state beyond its collaborators; each request maps to
// exactly one pipeline invocation.
//
// =============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/importer"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/template"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/types"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/upload"
)

// ImportService runs one import attempt. Satisfied by *importer.Importer.
type ImportService interface {
	Run(ctx context.Context, candidate *upload.Candidate, data []byte, profile importer.Profile) (*importer.Outcome, error)
}

// ReferenceClient fetches the collaborator data offered in template dropdowns.
type ReferenceClient interface {
	ListVendors(ctx context.Context) ([]types.Vendor, error)
	ListTransporters(ctx context.Context) ([]types.Transporter, error)
	ListPurchaseOrders(ctx context.Context) ([]types.PurchaseOrder, error)
}

// Server wires the HTTP routes to the pipeline.
type Server struct {
	imports ImportService
	refs    ReferenceClient
	engine  *gin.Engine
}

// New builds the server and registers its routes.
func New(imports ImportService, refs ReferenceClient) *Server {
	s := &Server{imports: imports, refs: refs, engine: gin.Default()}

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.POST("/import/purchase-orders", s.handleImport(importer.PurchaseOrders))
	api.POST("/import/shipments", s.handleImport(importer.Shipments))
	api.GET("/templates/:flow", s.handleTemplate)

	return s
}

// Engine exposes the underlying router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts serving on the given address, blocking until shutdown.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// handleImport adapts one multipart upload into a pipeline invocation.
func (s *Server) handleImport(profile importer.Profile) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"No file provided"}})
			return
		}

		candidate := &upload.Candidate{
			Name:             fileHeader.Filename,
			Size:             fileHeader.Size,
			DeclaredMIMEType: fileHeader.Header.Get("Content-Type"),
		}

		// Acceptance runs before the body is read, so an oversized or
		// mistyped upload is rejected without buffering it.
		if res := upload.Validate(candidate); !res.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"errors": res.Errors})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Failed to read uploaded file"}})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Failed to read uploaded file"}})
			return
		}

		outcome, err := s.imports.Run(c.Request.Context(), candidate, data, profile)
		switch {
		case errors.Is(err, importer.ErrImportInFlight):
			c.JSON(http.StatusConflict, gin.H{"errors": []string{err.Error()}})
			return
		case err != nil:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{err.Error()}})
			return
		}

		if len(outcome.ValidationErrors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": outcome.ValidationErrors, "outcome": outcome})
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

// handleTemplate emits an xlsx template pre-filled with dropdowns from the
// collaborator's current reference data.
func (s *Server) handleTemplate(c *gin.Context) {
	profile, err := importer.ProfileByName(c.Param("flow"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": []string{err.Error()}})
		return
	}

	ctx := c.Request.Context()
	ref := template.ReferenceData{}

	switch profile.Name {
	case importer.PurchaseOrders.Name:
		if ref.Vendors, err = s.refs.ListVendors(ctx); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"errors": []string{err.Error()}})
			return
		}
	case importer.Shipments.Name:
		if ref.Transporters, err = s.refs.ListTransporters(ctx); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"errors": []string{err.Error()}})
			return
		}
		if ref.PurchaseOrders, err = s.refs.ListPurchaseOrders(ctx); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"errors": []string{err.Error()}})
			return
		}
	}

	payload, err := template.Emit(profile, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{err.Error()}})
		return
	}

	filename := fmt.Sprintf("%s-template.xlsx", profile.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
