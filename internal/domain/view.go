package domain

import "time"

// ViewState is the screen a session is on. Exactly one is active.
type ViewState string

const (
	StateForm      ViewState = "form"
	StateAnalyzing ViewState = "analyzing"
	StateResults   ViewState = "results"
)

// TabID identifies one of the result tabs.
type TabID string

const (
	TabAudience    TabID = "audience"
	TabCreative    TabID = "creative"
	TabCompetitive TabID = "competitive"
	TabTrends      TabID = "trends"
)

// Tabs lists every result tab in display order. The first is the default.
var Tabs = []TabID{TabAudience, TabCreative, TabCompetitive, TabTrends}

// Valid reports whether t is one of Tabs.
func (t TabID) Valid() bool {
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}

// PanelID is the id of the content panel the tab toggles.
func (t TabID) PanelID() string {
	return string(t) + "-tab"
}

// NotificationKind picks the notification color.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a transient, auto-dismissing message.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// StageNames are the progress indicators shown while analyzing, one per
// analysis chain.
var StageNames = []string{
	"Audience Intelligence",
	"Creative Performance",
	"Competitive Intelligence",
	"Trend Analysis",
}

// Stage is one progress indicator on the analyzing screen.
type Stage struct {
	Index    int    `json:"index"` // 1-based
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}
