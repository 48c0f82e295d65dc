// Package sheets stores the record list in a Google Sheets
// spreadsheet, one record per row in the same column layout as the
// CSV file. It is the remote-sync backend behind ledger.Store.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tasca/internal/codec"
	"tasca/internal/core"
	"tasca/internal/ledger"
)

const dateLayout = time.RFC3339Nano

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Store = (*Client)(nil)

// NewFromEnv creates a Sheets-backed store using environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Optional: GOOGLE_SHEET_NAME
// (default "Expenses") and service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from the environment.
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

// Save implements ledger.RecordSaver: the sheet is cleared and
// rewritten wholesale, header row included.
func (c *Client) Save(ctx context.Context, records []core.Expense) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:D", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}

	values := make([][]any, 0, len(records)+1)
	values = append(values, []any{"ID", "Amount", "Tags", "Date"})
	for _, e := range records {
		values = append(values, []any{
			e.ID.String(),
			e.Amount.String(),
			codec.EncodeTags(e.Tags),
			e.Date.Format(dateLayout),
		})
	}

	writeRng := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	// RAW keeps Sheets from reinterpreting amounts and timestamps
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %s: %w", writeRng, err)
	}

	slog.DebugContext(ctx, "Records written to sheet", "sheet", c.sheetName, "count", len(records))
	return nil
}

// Load implements ledger.RecordLoader by scanning the sheet rows.
// Rows that do not parse are skipped, same policy as the CSV decoder.
func (c *Client) Load(ctx context.Context) ([]core.Expense, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:D", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var records []core.Expense
	for i, row := range resp.Values {
		cols := toStrings(row)
		if len(cols) < 4 {
			continue
		}
		id, err := uuid.Parse(cols[0])
		if err != nil {
			// Header and stray rows land here
			if i > 0 {
				slog.WarnContext(ctx, "Skipping sheet row with invalid id", "row", i+1, "value", cols[0])
			}
			continue
		}
		cents, ok := parseAmountCents(cols[1])
		if !ok {
			slog.WarnContext(ctx, "Skipping sheet row with invalid amount", "row", i+1, "value", cols[1])
			continue
		}
		date, err := time.Parse(dateLayout, cols[3])
		if err != nil {
			slog.WarnContext(ctx, "Skipping sheet row with invalid date", "row", i+1, "value", cols[3])
			continue
		}
		records = append(records, core.Expense{
			ID:     id,
			Amount: core.Money{Cents: cents},
			Tags:   codec.DecodeTags(cols[2]),
			Date:   date,
		})
	}
	return records, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func parseAmountCents(s string) (int64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}
