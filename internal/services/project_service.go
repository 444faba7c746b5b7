package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/saaaathvik/consultansease/internal/dtos"
	"github.com/saaaathvik/consultansease/internal/models"
	"github.com/saaaathvik/consultansease/internal/repositories"
	"github.com/saaaathvik/consultansease/internal/utils"
)

const exportSheetName = "Filtered Data"

// ProjectService proxies the spreadsheet-backed project records: list
// with filters, create/fetch/update/delete single rows, and export the
// filtered view as an .xlsx workbook.
type ProjectService interface {
	List(ctx context.Context, filters map[string]string) ([]map[string]string, error)
	Create(ctx context.Context, form dtos.ProjectForm) (string, error)
	Get(ctx context.Context, projectID string) ([]string, error)
	Update(ctx context.Context, projectID string, form dtos.ProjectForm) error
	Delete(ctx context.Context, projectID string) error
	Export(ctx context.Context, filters map[string]string) ([]byte, error)
}

type projectService struct {
	sheet   repositories.ProjectSheetRepository
	uploads UploadService
}

func NewProjectService(sheet repositories.ProjectSheetRepository, uploads UploadService) ProjectService {
	return &projectService{sheet: sheet, uploads: uploads}
}

// ---------------------------------------------------------------------
// List / Export
// ---------------------------------------------------------------------

func (s *projectService) List(ctx context.Context, filters map[string]string) ([]map[string]string, error) {
	headers, rows, err := s.readSheet(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := rowToObject(headers, row)
		if matchesFilters(obj, filters) {
			result = append(result, obj)
		}
	}
	return result, nil
}

func (s *projectService) Export(ctx context.Context, filters map[string]string) ([]byte, error) {
	headers, rows, err := s.readSheet(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &headerCells); err != nil {
		return nil, err
	}

	rowNum := 2
	for _, row := range rows {
		obj := rowToObject(headers, row)
		if !matchesFilters(obj, filters) {
			continue
		}
		cells := make([]interface{}, len(headers))
		for i, h := range headers {
			cells[i] = obj[fieldKey(h)]
		}
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheetName, start, &cells); err != nil {
			return nil, err
		}
		rowNum++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(max(len(headers), 1))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheetName, "A", lastCol, 15); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------
// Single-row operations
// ---------------------------------------------------------------------

func (s *projectService) Create(ctx context.Context, form dtos.ProjectForm) (string, error) {
	projectID := uuid.New().String()
	if err := s.sheet.Append(ctx, formToRow(projectID, form)); err != nil {
		return "", err
	}
	return projectID, nil
}

func (s *projectService) Get(ctx context.Context, projectID string) ([]string, error) {
	values, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx, row := findProjectRow(values, projectID)
	if idx < 0 {
		return nil, utils.ErrProjectNotFound
	}
	return row, nil
}

func (s *projectService) Update(ctx context.Context, projectID string, form dtos.ProjectForm) error {
	values, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return err
	}
	idx, row := findProjectRow(values, projectID)
	if idx < 0 {
		return utils.ErrProjectNotFound
	}

	oldBillProof := cell(row, models.ColBillProof)
	oldAgreementDoc := cell(row, models.ColAgreementDoc)

	// A freshly uploaded file replaces the stored one; otherwise the old
	// path is carried over.
	if form.BillProofPath != "" {
		s.uploads.Remove(oldBillProof)
	} else {
		form.BillProofPath = oldBillProof
	}
	if form.AgreementDocPath != "" {
		s.uploads.Remove(oldAgreementDoc)
	} else {
		form.AgreementDocPath = oldAgreementDoc
	}

	return s.sheet.UpdateRow(ctx, idx, formToRow(projectID, form))
}

func (s *projectService) Delete(ctx context.Context, projectID string) error {
	values, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return err
	}
	idx, row := findProjectRow(values, projectID)
	if idx < 0 {
		return utils.ErrProjectNotFound
	}

	s.uploads.Remove(cell(row, models.ColBillProof))
	s.uploads.Remove(cell(row, models.ColAgreementDoc))

	return s.sheet.DeleteRow(ctx, idx)
}

// ---------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------

func (s *projectService) readSheet(ctx context.Context) ([]string, [][]string, error) {
	values, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(values) == 0 {
		return nil, nil, nil
	}
	return values[0], values[1:], nil
}

func fieldKey(header string) string {
	if key, ok := models.SheetFieldKeys[strings.TrimSpace(header)]; ok {
		return key
	}
	return header
}

func rowToObject(headers []string, row []string) map[string]string {
	obj := make(map[string]string, len(headers))
	for i, header := range headers {
		obj[fieldKey(header)] = cell(row, i)
	}
	return obj
}

// matchesFilters applies the query filters to one mapped row.
// minSanctioned is a numeric lower bound on sanctionedAmount; every
// other non-empty filter is a case-insensitive substring match on the
// stringified field. A filter naming a field the row does not have
// matches nothing.
//
// An empty or blank sanctioned amount counts as zero, so any positive
// threshold excludes it; a genuinely non-numeric amount is never
// excluded by the threshold.
func matchesFilters(obj map[string]string, filters map[string]string) bool {
	if v := filters["minSanctioned"]; v != "" {
		if threshold, terr := strconv.ParseFloat(v, 64); terr == nil {
			var (
				amount float64
				aerr   error
			)
			if raw := strings.TrimSpace(obj["sanctionedAmount"]); raw != "" {
				amount, aerr = strconv.ParseFloat(raw, 64)
			}
			if aerr == nil && amount < threshold {
				return false
			}
		}
	}

	for key, value := range filters {
		if key == "minSanctioned" || value == "" {
			continue
		}
		field, ok := obj[key]
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(field), strings.ToLower(value)) {
			return false
		}
	}
	return true
}

// findProjectRow locates a row by project ID. The ID column is resolved
// from the header row, falling back to the first column.
func findProjectRow(values [][]string, projectID string) (int, []string) {
	if len(values) == 0 {
		return -1, nil
	}
	idCol := 0
	for i, header := range values[0] {
		if strings.TrimSpace(header) == "projectID" {
			idCol = i
			break
		}
	}
	for i := 1; i < len(values); i++ {
		if cell(values[i], idCol) == projectID {
			return i, values[i]
		}
	}
	return -1, nil
}

func formToRow(projectID string, form dtos.ProjectForm) []string {
	row := make([]string, models.ProjectColumnCount)
	row[models.ColProjectID] = projectID
	row[models.ColIndustry] = form.Industry
	row[models.ColDuration] = form.Duration
	row[models.ColTitle] = form.Title
	row[models.ColPI] = form.PI
	row[models.ColCoPI] = form.CoPI
	row[models.ColYear] = form.Year
	row[models.ColSanctioned] = form.Sanctioned
	row[models.ColReceived] = form.Received
	row[models.ColBillProof] = form.BillProofPath
	row[models.ColAgreementDoc] = form.AgreementDocPath
	row[models.ColStudents] = form.Students
	row[models.ColSummary] = form.Summary
	return row
}

// cell reads a column defensively: sheet rows drop trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
