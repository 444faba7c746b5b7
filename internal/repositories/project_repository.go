package repositories

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/saaaathvik/consultansease/internal/config"
)

// ProjectSheetRepository is the spreadsheet-backed record store for
// project rows. Row indices are zero-based positions within the sheet's
// value range (index 0 is the header row).
type ProjectSheetRepository interface {
	ReadAll(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
	UpdateRow(ctx context.Context, rowIndex int, row []string) error
	DeleteRow(ctx context.Context, rowIndex int) error
}

type sheetRepository struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewProjectSheetRepository(ctx context.Context, cfg *config.Config) (ProjectSheetRepository, error) {
	svc, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(cfg.GoogleCredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &sheetRepository{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func (r *sheetRepository) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, config.SheetRange).
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *sheetRepository) Append(ctx context.Context, row []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, config.SheetRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (r *sheetRepository) UpdateRow(ctx context.Context, rowIndex int, row []string) error {
	// Sheet rows are 1-based in A1 notation.
	rowRange := fmt.Sprintf("%s!A%d:M%d", config.SheetName, rowIndex+1, rowIndex+1)
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, rowRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (r *sheetRepository) DeleteRow(ctx context.Context, rowIndex int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    0,
						Dimension:  "ROWS",
						StartIndex: int64(rowIndex),
						EndIndex:   int64(rowIndex + 1),
					},
				},
			},
		},
	}
	_, err := r.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do()
	return err
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
