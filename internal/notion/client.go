package notion

import (
	"context"
	"time"

	gnt "github.com/dstotijn/go-notion"

	"github.com/TechBuddyz/Job-Application-Tracker/internal/domain"
)

type Client struct {
	api        *gnt.Client
	databaseID string
}

func New(token, databaseID string) *Client {
	return &Client{
		api:        gnt.NewClient(token),
		databaseID: databaseID,
	}
}

// Ping just tries a tiny QueryDatabase to see if the DB is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// helper: build a valid Notion rich_text slice from a plain string.
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{
		{
			Text: &gnt.Text{
				Content: s,
			},
		},
	}
}

func buildRecordProperties(rec domain.ApplicationRecord) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Candidate — Title (required title property)
	if rec.Candidate != "" {
		props["Candidate"] = gnt.DatabasePageProperty{
			Title: richText(rec.Candidate),
		}
	}

	// Company — Text (rich_text)
	if rec.Company != "" {
		props["Company"] = gnt.DatabasePageProperty{
			RichText: richText(rec.Company),
		}
	}

	// Job Title — Text (rich_text)
	if rec.JobTitle != "" {
		props["Job Title"] = gnt.DatabasePageProperty{
			RichText: richText(rec.JobTitle),
		}
	}

	// Who Applied — Text (rich_text)
	if rec.WhoApplied != "" {
		props["Who Applied"] = gnt.DatabasePageProperty{
			RichText: richText(rec.WhoApplied),
		}
	}

	// JD Link — URL
	if rec.JDLink != "" {
		url := rec.JDLink
		props["JD Link"] = gnt.DatabasePageProperty{
			URL: &url,
		}
	}

	// Resume Summary — Text (rich_text)
	if rec.ResumeSummary != "" {
		props["Resume Summary"] = gnt.DatabasePageProperty{
			RichText: richText(rec.ResumeSummary),
		}
	}

	// Status — Select
	if rec.Status != "" {
		props["Status"] = gnt.DatabasePageProperty{
			Select: &gnt.SelectOptions{
				Name: rec.Status,
			},
		}
	}

	// Date Applied — Date (date only, no time component)
	if rec.DateApplied != "" {
		if t, err := time.Parse(domain.DateLayout, rec.DateApplied); err == nil {
			dt := gnt.NewDateTime(t, false)
			props["Date Applied"] = gnt.DatabasePageProperty{
				Date: &gnt.Date{
					Start: dt,
				},
			}
		}
	}

	return props
}

// CreateRecordPage mirrors one saved application as a new row in the Notion
// database.
func (c *Client) CreateRecordPage(ctx context.Context, rec domain.ApplicationRecord) (string, error) {
	props := buildRecordProperties(rec)

	params := gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	}

	page, err := c.api.CreatePage(ctx, params)
	if err != nil {
		return "", err
	}
	return page.ID, nil
}
