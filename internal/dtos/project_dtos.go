package dtos

// ProjectForm carries one project's fields as submitted through the
// multipart create/edit forms. The two document paths are filled in by
// the controller after the uploads are stored; on edit, an empty path
// means "keep the existing file".
type ProjectForm struct {
	Industry         string
	Duration         string
	Title            string
	PI               string
	CoPI             string
	Year             string
	Sanctioned       string
	Received         string
	BillProofPath    string
	AgreementDocPath string
	Students         string
	Summary          string
}

type CreateProjectResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"projectId"`
}

type DeleteProjectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
