package handlers

import (
	"net/http"

	"doccheck-backend/repository"
	"doccheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for projects and persons
type ProjectHandler struct {
	projectRepo *repository.ProjectRepository
	personRepo  *repository.PersonRepository
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectRepo *repository.ProjectRepository, personRepo *repository.PersonRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		personRepo:  personRepo,
	}
}

// CreateProjectRequest is the find-or-create payload
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProject handles POST /api/projects with find-or-create semantics
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Project name is required",
			},
		})
		return
	}

	project, err := h.projectRepo.FindOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROJECT_CREATE_FAILED",
				"message": "Failed to create project",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROJECT_LIST_FAILED",
				"message": "Failed to list projects",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
	})
}

// GetProject handles GET /api/projects/:id and returns the project with its persons
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PROJECT_ID",
				"message": "Invalid project id format",
			},
		})
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		code := "PROJECT_FETCH_FAILED"
		if repository.IsNotFound(err) {
			status = http.StatusNotFound
			code = "PROJECT_NOT_FOUND"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": "Project not found",
			},
		})
		return
	}

	persons, err := h.personRepo.ListByProjectID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PERSON_LIST_FAILED",
				"message": "Failed to list persons",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
		"persons": persons,
	})
}

// GetPerson handles GET /api/persons/:id. The compliance alert list is
// recomputed from the stored fields; the checker is deterministic so the list
// matches what the processing run reported.
func (h *ProjectHandler) GetPerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PERSON_ID",
				"message": "Invalid person id format",
			},
		})
		return
	}

	person, err := h.personRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		code := "PERSON_FETCH_FAILED"
		if repository.IsNotFound(err) {
			status = http.StatusNotFound
			code = "PERSON_NOT_FOUND"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": "Person not found",
			},
		})
		return
	}

	fields := person.Fields()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"person":  person,
		"fields":  fields,
		"alerts":  service.BuildAlerts(fields),
	})
}
