// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package windows holds the example roster viewer. It is a consumer of the
// roster service, not part of it; embedding hosts bring their own UI.
package windows

import (
	"context"
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"rosterkit/internal/filter"
	"rosterkit/roster"
)

// RosterBrowser is a window showing the roster as a table with a query bar.
type RosterBrowser struct {
	a      fyne.App
	w      fyne.Window
	svc    *roster.Service
	logger *zap.Logger

	table      *widget.Table
	queryEntry *widget.Entry
	statusBar  *widget.Label

	// visible slice of the roster, rebuilt on reload and on query changes
	names []string
	roles []string
}

// CreateRosterBrowser builds the viewer window around a roster service.
func CreateRosterBrowser(svc *roster.Service, logger *zap.Logger) *RosterBrowser {
	b := &RosterBrowser{
		a:      app.New(),
		svc:    svc,
		logger: logger,
	}
	b.w = b.a.NewWindow("Roster Browser")
	b.buildContent()

	svc.OnReady("roster-browser", func() {
		fyne.Do(func() {
			b.reloadView("")
		})
	})

	return b
}

func (b *RosterBrowser) buildContent() {
	b.statusBar = widget.NewLabel("Initializing...")

	b.table = widget.NewTable(
		func() (int, int) {
			return len(b.names) + 1, len(b.roles) + 1
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.SetText(b.cellText(id.Row, id.Col))
		},
	)

	b.queryEntry = widget.NewEntry()
	b.queryEntry.SetPlaceHolder(`Query, e.g. Rank = Recruit AND Level > 5`)
	b.queryEntry.OnSubmitted = func(q string) { b.applyQuery(q) }

	searchBtn := widget.NewButton("Search", func() {
		b.applyQuery(b.queryEntry.Text)
	})
	clearBtn := widget.NewButton("Clear", func() {
		b.queryEntry.SetText("")
		b.applyQuery("")
	})
	reloadBtn := widget.NewButton("Reload", func() {
		b.statusBar.SetText("Reloading roster...")
		b.svc.Initialize(context.Background())
	})

	top := container.NewBorder(nil, nil, nil,
		container.NewHBox(searchBtn, clearBtn, reloadBtn), b.queryEntry)
	b.w.SetContent(container.NewBorder(top, b.statusBar, nil, nil, b.table))
	b.w.Resize(fyne.NewSize(900, 600))
}

// cellText resolves a table cell: row 0 is the header, column 0 the record
// name.
func (b *RosterBrowser) cellText(row, col int) string {
	if row == 0 {
		if col == 0 {
			return "name"
		}
		return b.roles[col-1]
	}
	name := b.names[row-1]
	if col == 0 {
		return name
	}
	return b.svc.Store().GetString(name, b.roles[col-1])
}

// applyQuery filters the visible records with the query language.
func (b *RosterBrowser) applyQuery(q string) {
	b.reloadView(q)
}

// reloadView rebuilds the visible slice from the store, optionally filtered.
func (b *RosterBrowser) reloadView(query string) {
	st := b.svc.Store()
	b.roles = st.RoleNames()

	f, err := filter.New(b.roles).Parse(query)
	if err != nil {
		dialog.ShowError(err, b.w)
		b.statusBar.SetText(fmt.Sprintf("Query error: %v", err))
		return
	}

	selected, err := st.Select(f)
	if err != nil {
		dialog.ShowError(err, b.w)
		b.statusBar.SetText(fmt.Sprintf("Query error: %v", err))
		return
	}

	b.names = b.names[:0]
	for name := range selected {
		b.names = append(b.names, name)
	}
	sort.Strings(b.names)

	status := fmt.Sprintf("%d of %d records", len(b.names), st.Len())
	if !b.svc.LoadSucceeded() {
		status += " (remote fetch failed, offline data)"
	}
	b.statusBar.SetText(status)
	b.table.Refresh()
}

// ShowAndRun shows the window and runs the event loop.
func (b *RosterBrowser) ShowAndRun() {
	b.w.ShowAndRun()
}
