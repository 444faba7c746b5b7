package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saaaathvik/consultansease/internal/dtos"
	"github.com/saaaathvik/consultansease/internal/services"
	"github.com/saaaathvik/consultansease/internal/utils"
)

const maxUploadMemory = 32 << 20 // 32 MiB before multipart spills to disk

type FormController struct {
	projectService services.ProjectService
	uploadService  services.UploadService
}

func NewFormController(projects services.ProjectService, uploads services.UploadService) *FormController {
	return &FormController{projectService: projects, uploadService: uploads}
}

// formFile returns the first uploaded file for the field, or nil.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// parseProjectForm reads the text fields and stores any uploaded
// documents, filling in their paths.
func (c *FormController) parseProjectForm(r *http.Request) (dtos.ProjectForm, error) {
	form := dtos.ProjectForm{
		Industry:   r.FormValue("industry"),
		Duration:   r.FormValue("duration"),
		Title:      r.FormValue("title"),
		PI:         r.FormValue("pi"),
		CoPI:       r.FormValue("copi"),
		Year:       r.FormValue("year"),
		Sanctioned: r.FormValue("sanctioned"),
		Received:   r.FormValue("received"),
		Students:   r.FormValue("students"),
		Summary:    r.FormValue("summary"),
	}

	if fh := formFile(r, "billProof"); fh != nil {
		path, err := c.uploadService.Save(fh)
		if err != nil {
			return form, err
		}
		form.BillProofPath = path
	}
	if fh := formFile(r, "agreementDoc"); fh != nil {
		path, err := c.uploadService.Save(fh)
		if err != nil {
			return form, err
		}
		form.AgreementDocPath = path
	}
	return form, nil
}

// CreateProject handles POST /forms.
func (c *FormController) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart payload", nil, err,
		)
		return
	}

	form, err := c.parseProjectForm(r)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to store uploaded file", nil, err,
		)
		return
	}

	projectID, err := c.projectService.Create(r.Context(), form)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error writing to spreadsheet", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.CreateProjectResponse{
		Message:   "Data written to spreadsheet",
		ProjectID: projectID,
	})
}

// GetProjectRow handles GET /edit/{id}: returns the raw sheet row.
func (c *FormController) GetProjectRow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	row, err := c.projectService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrProjectNotFound) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Project not found", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error fetching data", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, row)
}

// UpdateProject handles PUT /edit/{id}.
func (c *FormController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart payload", nil, err,
		)
		return
	}

	form, err := c.parseProjectForm(r)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to store uploaded file", nil, err,
		)
		return
	}

	if err := c.projectService.Update(r.Context(), id, form); err != nil {
		if errors.Is(err, utils.ErrProjectNotFound) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Project not found", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error updating data", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Data updated successfully"})
}
