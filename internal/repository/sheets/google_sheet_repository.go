package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/pgg11/stock-manager-frontend/internal/config"
)

const salesExportRange = "Sales!A:F"

// Exporter defines the export operations supported by the Google Sheets
// adapter. The spreadsheet is an offline business record; nothing is ever
// read back from it.
type Exporter interface {
	AppendSalesRows(ctx context.Context, rows [][]interface{}) error
}

// GoogleSheetExporter implements the Exporter interface using the official
// Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSalesRows appends the provided summary rows to the sales sheet.
func (e *GoogleSheetExporter) AppendSalesRows(ctx context.Context, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, salesExportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append %d rows into range %s: %w", len(rows), salesExportRange, err)
	}

	e.logger.Debug("sales rows appended to sheet", zap.Int("rows", len(rows)))
	return nil
}
