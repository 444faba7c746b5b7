package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saaaathvik/consultansease/internal/dtos"
	"github.com/saaaathvik/consultansease/internal/services"
	"github.com/saaaathvik/consultansease/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProjectController struct {
	projectService services.ProjectService
}

func NewProjectController(projects services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projects}
}

// queryFilters flattens the query string to one value per key; repeated
// parameters keep the first occurrence.
func queryFilters(r *http.Request) map[string]string {
	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	return filters
}

// ListProjects handles GET /api.
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := c.projectService.List(r.Context(), queryFilters(r))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Something went wrong", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// DeleteProject handles DELETE /api/{projectId}: removes the row and,
// best-effort, its two stored documents.
func (c *ProjectController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	if err := c.projectService.Delete(r.Context(), projectID); err != nil {
		if errors.Is(err, utils.ErrProjectNotFound) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Project not found", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Something went wrong", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteProjectResponse{
		Success: true,
		Message: "Entry and files deleted successfully",
	})
}

// DownloadProjects handles GET /api/download: the filtered view as an
// .xlsx attachment.
func (c *ProjectController) DownloadProjects(w http.ResponseWriter, r *http.Request) {
	data, err := c.projectService.Export(r.Context(), queryFilters(r))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Something went wrong", nil, err,
		)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=consultancy_data.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
