package models

import "time"

// PageSummary is the minimal page metadata returned by space discovery.
type PageSummary struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Identity is a Confluence user reference.
type Identity struct {
	AccountID string `yaml:"account_id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
}

// PageState is the classifier output for a single page.
type PageState struct {
	PageID       string    `yaml:"page_id"`
	Title        string    `yaml:"title,omitempty"`
	CreatedBy    Identity  `yaml:"created_by"`
	LastEditedBy Identity  `yaml:"last_edited_by"`
	WhenRaw      string    `yaml:"last_edited_raw"`
	When         time.Time `yaml:"last_edited"`
	Phase        Phase     `yaml:"-"`
}
