package confluence

import "github.com/nwillems/confluence-lifecycle/models"

// userRecord is the wire shape of a Confluence user reference.
type userRecord struct {
	AccountID  string `json:"accountId"`
	PublicName string `json:"publicName"`
	Email      string `json:"email"`
}

func (u userRecord) identity() models.Identity {
	return models.Identity{
		AccountID: u.AccountID,
		Name:      u.PublicName,
		Email:     u.Email,
	}
}

// pageRecord is the wire shape of a content summary.
type pageRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// contentResults is the paginated envelope around content listings.
type contentResults struct {
	Results []pageRecord `json:"results"`
	Start   int          `json:"start"`
	Limit   int          `json:"limit"`
	Size    int          `json:"size"`
}

// labelRecord is the wire shape of a single page label.
type labelRecord struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
	Label  string `json:"label"`
}

// labelResults is the envelope around a page's label listing.
type labelResults struct {
	Results []labelRecord `json:"results"`
}

// historyRecord is the wire shape of a page's history resource.
type historyRecord struct {
	CreatedBy   userRecord `json:"createdBy"`
	CreatedDate string     `json:"createdDate"`
	LastUpdated struct {
		By   userRecord `json:"by"`
		When string     `json:"when"`
	} `json:"lastUpdated"`
}

// PageHistory is the creation and last-edit metadata for a page.
type PageHistory struct {
	CreatedBy    models.Identity
	LastEditedBy models.Identity
	// When is the last-edit timestamp exactly as the API serialized it.
	When string
}

// versionedContent is the wire shape returned when fetching a page with its
// version expanded, needed for updates.
type versionedContent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Version struct {
		Number int `json:"number"`
	} `json:"version"`
	Space struct {
		Key string `json:"key"`
	} `json:"space"`
}
