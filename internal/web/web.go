// Package web renders the server-side dashboard page. Every control on the
// page is a plain link to the URL of the state it leads to, so the page works
// without JavaScript and the address bar always holds the canonical state.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/internal/dashboard"
	"github.com/kiranshivaraju/latencybench/internal/view"
	"github.com/kiranshivaraju/latencybench/pkg/models"
)

const pageTitle = "Serverless Database Latency Benchmark"

// maxHistoryCharts bounds the history section to keep the page small when
// many databases are displayed.
const maxHistoryCharts = 12

// ── Template helpers ──────────────────────────────────────────────────────────

var funcMap = template.FuncMap{
	"fmtLatency": func(m aggregate.Mean) string {
		if !m.Valid() {
			return "—"
		}
		return fmt.Sprintf("%.0fms", m.Value)
	},
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.UTC().Format("Jan 2 15:04 UTC")
	},
	"title": func(q models.QueryType) string {
		s := string(q)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"check": func(b bool) string {
		if b {
			return "☑"
		}
		return "☐"
	},
	"cellClass": func(sameRegion bool, c models.ConnectionMethod) string {
		switch {
		case sameRegion:
			return "same"
		case c == models.ConnectionWebSocket:
			return "ws"
		case c == models.ConnectionTCP:
			return "tcp"
		}
		return ""
	},
	"barPct": func(m aggregate.Mean, scale float64) int {
		if !m.Valid() || scale <= 0 {
			return 0
		}
		return int(math.Ceil(m.Value / scale * 100))
	},
}

var (
	dashboardTmpl   = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplFAQ + tmplDashboard))
	faqTmpl         = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplFAQ + tmplFAQPage))
	unavailableTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplUnavailable))
)

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func render(w http.ResponseWriter, t *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("template error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// SnapshotLoader defines the interface the pages depend on.
type SnapshotLoader interface {
	Load(ctx context.Context) (*dashboard.Snapshot, error)
}

// Handler serves the HTML pages.
type Handler struct {
	svc SnapshotLoader
}

// NewHandler creates a Handler reading from svc.
func NewHandler(svc SnapshotLoader) *Handler {
	return &Handler{svc: svc}
}

// Dashboard serves GET /. A request whose query is not the canonical
// encoding of the state it decodes to is redirected to the canonical URL.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Load(r.Context())
	if err != nil {
		if !errors.Is(err, dashboard.ErrDataUnavailable) {
			slog.Error("load snapshot", "error", err)
		}
		render(w, unavailableTmpl, http.StatusServiceUnavailable, basePage{Title: pageTitle})
		return
	}

	catalog := snap.Catalog()
	q := r.URL.Query()
	if !view.IsCanonical(q, catalog) {
		http.Redirect(w, r, href(view.Decode(q, catalog), catalog), http.StatusFound)
		return
	}

	render(w, dashboardTmpl, http.StatusOK, newDashboardPage(snap, view.Decode(q, catalog)))
}

// FAQ serves GET /faq.
func (h *Handler) FAQ(w http.ResponseWriter, _ *http.Request) {
	render(w, faqTmpl, http.StatusOK, basePage{Title: "FAQ · " + pageTitle, FAQ: FAQ(), ArticleURL: transportsArticle})
}

// ── Page model ────────────────────────────────────────────────────────────────

type basePage struct {
	Title      string
	FAQ        []FAQEntry
	ArticleURL string
}

type dashboardPage struct {
	basePage

	State         view.State
	Table         view.Table
	WindowDays    int
	LoadedAt      time.Time
	DatabaseCount int

	SelectAllHref  string
	SelectNoneHref string
	Sidebar        []sidebarGroup

	ConnectionLinks []filterLink
	QueryLinks      []filterLink
	RegionLinks     []filterLink

	History  []historyChart
	ShowCold bool
	ShowHot  bool
}

type filterLink struct {
	Label  string
	Href   string
	Active bool
}

type sidebarGroup struct {
	Label      string
	Connection models.ConnectionMethod
	Checked    bool
	Href       string
	Databases  []sidebarDatabase
}

type sidebarDatabase struct {
	Name     string
	Provider string
	Checked  bool
	Href     string
}

type historyChart struct {
	Database models.DatabaseTarget
	Points   []aggregate.DailyPoint
	Max      float64
}

func href(s view.State, c *view.Catalog) string {
	return "/?" + s.Query(c)
}

func newDashboardPage(snap *dashboard.Snapshot, st view.State) dashboardPage {
	c := snap.Catalog()

	none := st
	none.Selected = []int{}
	all := st
	all.Selected = c.IDs()

	p := dashboardPage{
		basePage:       basePage{Title: pageTitle, FAQ: FAQ(), ArticleURL: transportsArticle},
		State:          st,
		Table:          snap.Table(st),
		WindowDays:     snap.WindowDays(),
		LoadedAt:       snap.LoadedAt(),
		DatabaseCount:  c.Len(),
		SelectAllHref:  href(all, c),
		SelectNoneHref: href(none, c),
	}

	for _, g := range view.GroupDatabases(c.Databases()) {
		ids := g.DatabaseIDs()
		checked := true
		for _, id := range ids {
			if !st.IsSelected(id) {
				checked = false
				break
			}
		}
		sg := sidebarGroup{
			Label:      g.RegionLabel,
			Connection: g.Connection,
			Checked:    checked,
			Href:       href(st.SetGroup(ids, !checked, c), c),
		}
		for _, db := range g.Databases {
			sg.Databases = append(sg.Databases, sidebarDatabase{
				Name:     db.Name,
				Provider: db.Provider,
				Checked:  st.IsSelected(db.ID),
				Href:     href(st.ToggleDatabase(db.ID, c), c),
			})
		}
		p.Sidebar = append(p.Sidebar, sg)
	}

	for _, f := range []view.ConnectionFilter{view.ConnectionFilterHTTP, view.ConnectionFilterWebSocket, view.ConnectionFilterTCP, view.ConnectionFilterAll} {
		p.ConnectionLinks = append(p.ConnectionLinks, filterLink{
			Label:  connectionLabel(f),
			Href:   href(st.SetConnectionFilter(f, c), c),
			Active: st.Connection == f,
		})
	}
	for _, f := range []view.QueryFilter{view.QueryFilterBoth, view.QueryFilterCold, view.QueryFilterHot} {
		p.QueryLinks = append(p.QueryLinks, filterLink{
			Label:  queryLabel(f),
			Href:   href(st.SetQueryFilter(f), c),
			Active: st.Queries == f,
		})
	}
	for _, f := range []view.RegionFilter{view.RegionFilterMatching, view.RegionFilterAll} {
		p.RegionLinks = append(p.RegionLinks, filterLink{
			Label:  regionLabel(f),
			Href:   href(st.SetRegionFilter(f), c),
			Active: st.Regions == f,
		})
	}

	for _, q := range st.Queries.QueryTypes() {
		switch q {
		case models.QueryCold:
			p.ShowCold = true
		case models.QueryHot:
			p.ShowHot = true
		}
	}

	series := snap.HistoryByDatabase()
	for _, db := range c.Displayed(st) {
		if len(p.History) == maxHistoryCharts {
			break
		}
		points := series[db.ID]
		p.History = append(p.History, historyChart{Database: db, Points: points, Max: maxLatency(points, st.Queries)})
	}

	return p
}

// maxLatency is the chart scale: the largest mean among the query types the
// filter shows.
func maxLatency(points []aggregate.DailyPoint, f view.QueryFilter) float64 {
	var top float64
	for _, p := range points {
		for _, q := range f.QueryTypes() {
			m := p.Hot
			if q == models.QueryCold {
				m = p.Cold
			}
			if m.Valid() && m.Value > top {
				top = m.Value
			}
		}
	}
	return top
}

func connectionLabel(f view.ConnectionFilter) string {
	switch f {
	case view.ConnectionFilterHTTP:
		return "HTTP"
	case view.ConnectionFilterWebSocket:
		return "WebSocket"
	case view.ConnectionFilterTCP:
		return "TCP"
	}
	return "All"
}

func queryLabel(f view.QueryFilter) string {
	switch f {
	case view.QueryFilterCold:
		return "Cold Queries"
	case view.QueryFilterHot:
		return "Hot Queries"
	}
	return "All Queries"
}

func regionLabel(f view.RegionFilter) string {
	if f == view.RegionFilterAll {
		return "All Regions"
	}
	return "Matching Regions"
}
