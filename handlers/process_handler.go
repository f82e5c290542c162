package handlers

import (
	"bytes"
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"doccheck-backend/models"
	"doccheck-backend/service"
	"doccheck-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentStore records uploaded-document rows.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
}

// ProcessHandler handles the end-to-end processing of one person's three
// documents: store the uploads, recognize their text, extract the field
// schema, build the alert list and persist the record.
type ProcessHandler struct {
	processService   *service.ProcessService
	documentRepo     DocumentStore
	storage          storage.Storage
	recognizer       service.TextRecognizer
	patternExtractor service.FieldExtractor
	aiExtractor      service.FieldExtractor
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(
	processService *service.ProcessService,
	documentRepo DocumentStore,
	fileStorage storage.Storage,
	recognizer service.TextRecognizer,
	patternExtractor service.FieldExtractor,
	aiExtractor service.FieldExtractor,
) *ProcessHandler {
	return &ProcessHandler{
		processService:   processService,
		documentRepo:     documentRepo,
		storage:          fileStorage,
		recognizer:       recognizer,
		patternExtractor: patternExtractor,
		aiExtractor:      aiExtractor,
		maxFileSize:      10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf": true,
			"image/png":       true,
			"image/jpeg":      true,
			"text/plain":      true,
		},
	}
}

type upload struct {
	kind     models.DocumentKind
	header   *multipart.FileHeader
	mimeType string
	data     []byte
	text     string
}

// ProcessDocuments handles POST /api/process. The three uploads are required;
// everything past validation degrades instead of failing: unreadable text
// counts as an empty document and extraction trouble yields the default
// schema, so a run always ends with a persisted record and an alert list.
func (h *ProcessHandler) ProcessDocuments(c *gin.Context) {
	projectName := strings.TrimSpace(c.PostForm("project_name"))
	if projectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_PROJECT_NAME",
				"message": "project_name is required",
			},
		})
		return
	}

	uploads := []*upload{
		{kind: models.DocumentKindCV},
		{kind: models.DocumentKindIdentity},
		{kind: models.DocumentKindHealthCard},
	}

	for _, u := range uploads {
		fileHeader, err := c.FormFile(string(u.kind))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_FILE",
					"message": "File " + string(u.kind) + " is required",
				},
			})
			return
		}

		if fileHeader.Size > h.maxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_TOO_LARGE",
					"message": "File " + fileHeader.Filename + " exceeds the maximum size",
				},
			})
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = mimeTypeFromExtension(fileHeader.Filename)
		}
		if !h.allowedMimeTypes[mimeType] {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNSUPPORTED_FILE_TYPE",
					"message": "Unsupported file type: " + mimeType,
				},
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_READ_FAILED",
					"message": "Failed to read uploaded file",
				},
			})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_READ_FAILED",
					"message": "Failed to read uploaded file",
				},
			})
			return
		}

		u.header = fileHeader
		u.mimeType = mimeType
		u.data = data
	}

	// Text acquisition: a failed recognition is an empty document, not an
	// error; the downstream patterns simply find nothing for it.
	ctx := c.Request.Context()
	for _, u := range uploads {
		text, err := h.recognizer.RecognizeText(ctx, u.header.Filename, u.mimeType, u.data)
		if err != nil {
			log.Printf("Warning: text recognition failed for %s (%s): %v", u.header.Filename, u.kind, err)
			text = ""
		}
		u.text = text
	}

	result, err := h.processService.ProcessDocuments(ctx, service.ProcessDocumentsRequest{
		ProjectName:    projectName,
		CVText:         uploads[0].text,
		IdentityText:   uploads[1].text,
		HealthCardText: uploads[2].text,
		Extractor:      h.selectExtractor(c.Query("extractor")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROCESSING_FAILED",
				"message": "Failed to process documents",
			},
		})
		return
	}

	// Keep the source files for review. Storage trouble is logged, not
	// surfaced: the record is already persisted.
	for _, u := range uploads {
		docID := uuid.New()
		storagePath, err := h.storage.Upload(ctx, docID, u.kind, u.header.Filename, bytes.NewReader(u.data))
		if err != nil {
			log.Printf("Warning: failed to store %s upload: %v", u.kind, err)
			continue
		}

		doc := &models.Document{
			ProjectID:   result.Project.ID,
			PersonID:    &result.Person.ID,
			Kind:        u.kind,
			Filename:    u.header.Filename,
			MimeType:    u.mimeType,
			Size:        u.header.Size,
			StoragePath: storagePath,
		}
		if err := h.documentRepo.Create(ctx, doc); err != nil {
			log.Printf("Warning: failed to record %s document row: %v", u.kind, err)
		}
	}

	response := gin.H{
		"success":  true,
		"project":  result.Project,
		"person":   result.Person,
		"fields":   result.Fields,
		"alerts":   result.Alerts,
		"degraded": result.Degraded,
	}
	if result.Degraded {
		response["degraded_reason"] = result.DegradedReason
	}
	c.JSON(http.StatusOK, response)
}

// selectExtractor maps the optional extractor query parameter to a concrete
// extractor; unknown or empty values fall back to the wired default.
func (h *ProcessHandler) selectExtractor(name string) service.FieldExtractor {
	switch name {
	case "pattern":
		return h.patternExtractor
	case "ai":
		return h.aiExtractor
	default:
		return nil
	}
}

func mimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
