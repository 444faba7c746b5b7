package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaaathvik/consultansease/internal/utils"
)

type fakeUploadService struct {
	savedNames []string
	removed    []string
}

func (s *fakeUploadService) Save(fh *multipart.FileHeader) (string, error) {
	s.savedNames = append(s.savedNames, fh.Filename)
	return "uploads/" + fh.Filename, nil
}

func (s *fakeUploadService) Remove(path string) {
	s.removed = append(s.removed, path)
}

func formRouter(c *FormController) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/forms", c.CreateProject).Methods("POST")
	router.HandleFunc("/edit/{id}", c.GetProjectRow).Methods("GET")
	router.HandleFunc("/edit/{id}", c.UpdateProject).Methods("PUT")
	return router
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-contents"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateProjectStoresUploadsAndForm(t *testing.T) {
	svc := &fakeProjectService{createID: "generated-id"}
	uploads := &fakeUploadService{}
	router := formRouter(NewFormController(svc, uploads))

	body, contentType := multipartBody(t,
		map[string]string{
			"industry":   "Acme Industries",
			"title":      "Erosion Study",
			"pi":         "Dr. Rao",
			"year":       "2023-24",
			"sanctioned": "500000",
		},
		map[string]string{
			"billProof":    "bill.pdf",
			"agreementDoc": "agreement.pdf",
		},
	)

	req := httptest.NewRequest("POST", "/forms", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "generated-id")

	assert.ElementsMatch(t, []string{"bill.pdf", "agreement.pdf"}, uploads.savedNames)
	assert.Equal(t, "Acme Industries", svc.lastForm.Industry)
	assert.Equal(t, "Dr. Rao", svc.lastForm.PI)
	assert.Equal(t, "uploads/bill.pdf", svc.lastForm.BillProofPath)
	assert.Equal(t, "uploads/agreement.pdf", svc.lastForm.AgreementDocPath)
}

func TestCreateProjectWithoutFiles(t *testing.T) {
	svc := &fakeProjectService{createID: "generated-id"}
	uploads := &fakeUploadService{}
	router := formRouter(NewFormController(svc, uploads))

	body, contentType := multipartBody(t, map[string]string{"title": "No Docs Yet"}, nil)

	req := httptest.NewRequest("POST", "/forms", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uploads.savedNames)
	assert.Empty(t, svc.lastForm.BillProofPath)
}

func TestGetProjectRowNotFound(t *testing.T) {
	svc := &fakeProjectService{getErr: utils.ErrProjectNotFound}
	router := formRouter(NewFormController(svc, &fakeUploadService{}))

	req := httptest.NewRequest("GET", "/edit/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProjectNotFound(t *testing.T) {
	svc := &fakeProjectService{updateErr: utils.ErrProjectNotFound}
	router := formRouter(NewFormController(svc, &fakeUploadService{}))

	body, contentType := multipartBody(t, map[string]string{"title": "Renamed"}, nil)
	req := httptest.NewRequest("PUT", "/edit/missing", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
