// Package export pushes sessions to a Google Sheets spreadsheet so the
// group can see expenses without running the app.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"caulong/internal/core"
	"caulong/internal/split"
)

// SessionExporter writes sessions to an external sheet
type SessionExporter interface {
	ExportSession(ctx context.Context, s *core.Session) error
	RemoveSession(ctx context.Context, sessionID string) error
}

// SheetsExporter exports sessions to a Google Sheets spreadsheet, one row
// per session keyed by session ID in the first column.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ SessionExporter = (*SheetsExporter)(nil)

// NewSheetsExporter creates an exporter using Service Account credentials
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		sheetName = "Sessions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ExportSession upserts the session's row. If the session ID already
// appears in column A its row is overwritten, otherwise a row is appended.
func (e *SheetsExporter) ExportSession(ctx context.Context, s *core.Session) error {
	row, err := e.findRow(ctx, s.ID)
	if err != nil {
		return err
	}

	vr := &gsheet.ValueRange{Values: [][]any{sessionRow(s)}}

	if row > 0 {
		rng := fmt.Sprintf("%s!A%d", e.sheetName, row)
		_, err = e.svc.Spreadsheets.Values.Update(e.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update session row: %w", err)
		}
		return nil
	}

	rng := fmt.Sprintf("%s!A:A", e.sheetName)
	_, err = e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append session row: %w", err)
	}
	return nil
}

// RemoveSession blanks the session's row. Sheets rows are not deleted so
// that row numbers stay stable for concurrent exports.
func (e *SheetsExporter) RemoveSession(ctx context.Context, sessionID string) error {
	row, err := e.findRow(ctx, sessionID)
	if err != nil {
		return err
	}
	if row == 0 {
		return nil // already gone
	}

	rng := fmt.Sprintf("%s!A%d:H%d", e.sheetName, row, row)
	_, err = e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear session row: %w", err)
	}
	return nil
}

// findRow returns the 1-based row holding the session ID, or 0 if absent
func (e *SheetsExporter) findRow(ctx context.Context, sessionID string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", e.sheetName)
	resp, err := e.svc.Spreadsheets.Values.Get(e.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read session ids: %w", err)
	}
	for i, row := range resp.Values {
		if len(row) > 0 && fmt.Sprint(row[0]) == sessionID {
			return i + 1, nil
		}
	}
	return 0, nil
}

// sessionRow flattens a session into one spreadsheet row:
// id, date, location, duration, players, total, per-player shares, notes.
func sessionRow(s *core.Session) []any {
	calc := split.Calculate(*s)

	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}

	var shares []string
	for _, p := range s.Players {
		shares = append(shares, fmt.Sprintf("%s: %s", p.Name, core.FormatVND(calc.SplitByPlayer[p.ID])))
	}

	return []any{
		s.ID,
		s.Date.Format("02/01/2006"),
		s.Location,
		core.FormatDurationVN(s.Duration),
		strings.Join(names, ", "),
		core.FormatVND(calc.TotalAmount),
		strings.Join(shares, "; "),
		s.Notes,
	}
}
