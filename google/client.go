package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/fopina/xsibas-workouts/workout"
)

const (
	SHEETS          = sheets.SpreadsheetsScope
	DRIVE           = drive.DriveMetadataReadonlyScope
	VALUE_INPUT_RAW = "RAW"
)

// Client is the Google Sheets/Drive API client shared by every load and save of a session. It is not
// usable until it has been initialised, bound to an access token and the API loaded.
type Client struct {
	options []option.ClientOption
	ready   chan struct{}
	once    sync.Once

	mu     sync.RWMutex
	http   *http.Client
	sheets *sheets.Service
	drive  *drive.Service
}

func NewClient(options ...option.ClientOption) *Client {
	return &Client{
		options: options,
		ready:   make(chan struct{}),
	}
}

// Init signals that the client is ready for use. Only the first call has any effect.
func (c *Client) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.once.Do(func() {
		close(c.ready)
	})

	return nil
}

// Ready blocks until the client has been initialised or the context is done.
func (c *Client) Ready(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil

	case <-ctx.Done():
		return ctx.Err()
	}
}

// Bind sets the access token used for all subsequent API requests.
func (c *Client) Bind(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("missing access token")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.http = oauth2.NewClient(context.Background(), ts)

	return nil
}

// Load creates the Sheets and Drive services for the bound token.
func (c *Client) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.http == nil {
		return fmt.Errorf("no access token")
	}

	options := append(append([]option.ClientOption{}, c.options...), option.WithHTTPClient(c.http))

	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return classify(fmt.Errorf("unable to create new Sheets client (%w)", err))
	}

	gdrive, err := drive.NewService(ctx, options...)
	if err != nil {
		return classify(fmt.Errorf("unable to create new Drive client (%w)", err))
	}

	c.sheets = google
	c.drive = gdrive

	return nil
}

func (c *Client) service() (*sheets.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.sheets == nil {
		return nil, fmt.Errorf("Sheets API not loaded")
	}

	return c.sheets, nil
}

// Title returns the spreadsheet title.
func (c *Client) Title(ctx context.Context, sheetID string) (string, error) {
	google, err := c.service()
	if err != nil {
		return "", err
	}

	spreadsheet, err := google.Spreadsheets.Get(sheetID).Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return "", classify(fmt.Errorf("failed to fetch spreadsheet (%w)", err))
	}

	if spreadsheet.Properties == nil {
		return "", nil
	}

	return spreadsheet.Properties.Title, nil
}

// Tabs returns the titles of the worksheets in the spreadsheet, in sheet order.
func (c *Client) Tabs(ctx context.Context, sheetID string) ([]string, error) {
	google, err := c.service()
	if err != nil {
		return nil, err
	}

	spreadsheet, err := google.Spreadsheets.Get(sheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Errorf("failed to fetch spreadsheet (%w)", err))
	}

	tabs := []string{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			tabs = append(tabs, sheet.Properties.Title)
		}
	}

	return tabs, nil
}

// Values returns the cells of a range as strings. Trailing empty rows and cells are omitted by the API.
func (c *Client) Values(ctx context.Context, sheetID string, area string) ([][]string, error) {
	google, err := c.service()
	if err != nil {
		return nil, err
	}

	response, err := google.Spreadsheets.Values.Get(sheetID, area).Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Errorf("unable to retrieve data from sheet (%w)", err))
	}

	return workout.Rows(response.Values), nil
}

// Header returns the first row of a worksheet. An empty worksheet has an empty header.
func (c *Client) Header(ctx context.Context, sheetID string, tab string) ([]string, error) {
	return c.HeaderAt(ctx, sheetID, tab, 1)
}

// HeaderAt returns a (1-based) row of a worksheet, starting from column A. An empty row is an empty header.
func (c *Client) HeaderAt(ctx context.Context, sheetID string, tab string, row int) ([]string, error) {
	if row < 1 {
		return nil, fmt.Errorf("invalid header row %v", row)
	}

	rows, err := c.Values(ctx, sheetID, fmt.Sprintf("%v!%v:%v", Quote(tab), row, row))
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []string{}, nil
	}

	return rows[0], nil
}

// WriteCell replaces the value of a single cell. The column is 0-based and the row is the 1-based sheet row.
func (c *Client) WriteCell(ctx context.Context, sheetID string, tab string, column int, row int, value string) error {
	google, err := c.service()
	if err != nil {
		return err
	}

	if column < 0 || row < 1 {
		return fmt.Errorf("invalid cell (column:%v row:%v)", column, row)
	}

	rq := sheets.ValueRange{
		Values: [][]any{{value}},
	}

	cell := Cell(tab, column, row)
	if _, err := google.Spreadsheets.Values.Update(sheetID, cell, &rq).ValueInputOption(VALUE_INPUT_RAW).Context(ctx).Do(); err != nil {
		return classify(fmt.Errorf("error updating %v (%w)", cell, err))
	}

	return nil
}

// classify marks errors with the 'authentication expired' signature so that they can be reported as an
// expired login rather than as a transport error.
func classify(err error) error {
	var gerr *googleapi.Error

	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusUnauthorized || strings.Contains(gerr.Body, "UNAUTHENTICATED") {
			return fmt.Errorf("%w (%w)", workout.ErrAuthExpired, err)
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w (%w)", workout.ErrAuthExpired, err)
	}

	return err
}
