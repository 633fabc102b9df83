package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/dto"
	"github.com/BruksfildServices01/campus-booking/internal/httpresp"
	ucdirectory "github.com/BruksfildServices01/campus-booking/internal/usecase/directory"
)

type DirectoryHandler struct {
	search *ucdirectory.SearchTeachers
	logger *zap.Logger
}

func NewDirectoryHandler(search *ucdirectory.SearchTeachers, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{search: search, logger: logger}
}

// Search accepts the term as ?query= or the older ?search=.
func (h *DirectoryHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		query = c.Query("search")
	}

	entries, err := h.search.Execute(c.Request.Context(), query)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	teachers := make([]dto.TeacherDTO, 0, len(entries))
	for _, e := range entries {
		teachers = append(teachers, dto.NewTeacherDTO(e))
	}

	httpresp.With(c, http.StatusOK, "", gin.H{"teachers": teachers})
}
