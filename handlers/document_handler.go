package handlers

import (
	"context"
	"fmt"
	"net/http"

	"doccheck-backend/models"
	"doccheck-backend/repository"
	"doccheck-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentReader looks up stored document rows for review.
type DocumentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByPersonID(ctx context.Context, personID uuid.UUID) ([]*models.Document, error)
}

// DocumentHandler serves the source files kept from processing runs, so a
// reviewer can check an extracted record against the documents it came from.
type DocumentHandler struct {
	documentRepo DocumentReader
	storage      storage.Storage
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentRepo DocumentReader, fileStorage storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		documentRepo: documentRepo,
		storage:      fileStorage,
	}
}

// ListPersonDocuments handles GET /api/persons/:id/documents
func (h *DocumentHandler) ListPersonDocuments(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid person ID format",
			},
		})
		return
	}

	documents, err := h.documentRepo.ListByPersonID(c.Request.Context(), personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": "Failed to list documents",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"documents": documents,
	})
}

// DownloadDocument handles GET /api/documents/:id
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid document ID format",
			},
		})
		return
	}

	doc, err := h.documentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Document not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOOKUP_FAILED",
				"message": "Failed to look up document",
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download document: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", doc.Filename))
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, reader, nil)
}
