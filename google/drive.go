package google

import (
	"context"
	"fmt"
	"time"
)

const SPREADSHEET_MIME_TYPE = "application/vnd.google-apps.spreadsheet"

// Spreadsheet is a Google Sheets document visible to the user.
type Spreadsheet struct {
	ID       string
	Name     string
	Modified time.Time
}

func (s Spreadsheet) URL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%v", s.ID)
}

// Spreadsheets lists the spreadsheets in the user's Drive, most recently modified first.
func (c *Client) Spreadsheets(ctx context.Context) ([]Spreadsheet, error) {
	c.mu.RLock()
	gdrive := c.drive
	c.mu.RUnlock()

	if gdrive == nil {
		return nil, fmt.Errorf("Drive API not loaded")
	}

	list := []Spreadsheet{}
	page := ""
	query := fmt.Sprintf("mimeType='%v' and trashed=false", SPREADSHEET_MIME_TYPE)

	for {
		call := gdrive.Files.List().
			Q(query).
			OrderBy("modifiedTime desc").
			Fields("nextPageToken", "files(id,name,modifiedTime)").
			Context(ctx)

		if page != "" {
			call.PageToken(page)
		}

		files, err := call.Do()
		if err != nil {
			return nil, classify(fmt.Errorf("unable to list spreadsheets (%w)", err))
		}

		for _, f := range files.Files {
			s := Spreadsheet{
				ID:   f.Id,
				Name: f.Name,
			}

			if f.ModifiedTime != "" {
				if datetime, err := time.Parse("2006-01-02T15:04:05.999Z", f.ModifiedTime); err == nil {
					s.Modified = datetime
				}
			}

			list = append(list, s)
		}

		if page = files.NextPageToken; page == "" {
			break
		}
	}

	return list, nil
}
