package view

import (
	"time"

	"github.com/ignite/campaign-insights/internal/domain"
)

// Snapshot is a read-only copy of a controller's state. Slices are private
// copies; Document is shared but never mutated.
type Snapshot struct {
	State         domain.ViewState      `json:"state"`
	Form          domain.RawForm        `json:"form"`
	Document      *Document             `json:"document,omitempty"`
	ActiveTab     domain.TabID          `json:"active_tab"`
	Stages        []domain.Stage        `json:"stages"`
	Notifications []domain.Notification `json:"notifications"`
	Renders       int                   `json:"renders"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// TabView is one tab button with its panel.
type TabView struct {
	ID      domain.TabID `json:"id"`
	PanelID string       `json:"panel_id"`
	Active  bool         `json:"active"`
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:         c.st.state,
		Form:          c.st.form,
		Document:      c.st.doc,
		ActiveTab:     c.st.activeTab,
		Stages:        append([]domain.Stage{}, c.st.stages...),
		Notifications: append([]domain.Notification{}, c.st.notes...),
		Renders:       c.st.renders,
		UpdatedAt:     c.st.updated,
	}
}

// VisiblePanel is the one panel shown for the snapshot's state.
func (s Snapshot) VisiblePanel() string {
	switch s.State {
	case domain.StateAnalyzing:
		return PanelStatus
	case domain.StateResults:
		return PanelResults
	default:
		return PanelForm
	}
}

// PanelVisible reports whether the named panel is shown.
func (s Snapshot) PanelVisible(panel string) bool {
	return s.VisiblePanel() == panel
}

// Tabs lists the tabs with exactly one marked active.
func (s Snapshot) Tabs() []TabView {
	out := make([]TabView, len(domain.Tabs))
	for i, t := range domain.Tabs {
		out[i] = TabView{ID: t, PanelID: t.PanelID(), Active: t == s.ActiveTab}
	}
	return out
}

// CompletedStages counts the completed progress stages.
func (s Snapshot) CompletedStages() int {
	n := 0
	for _, st := range s.Stages {
		if st.Complete {
			n++
		}
	}
	return n
}
