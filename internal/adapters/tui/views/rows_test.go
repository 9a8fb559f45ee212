package views

import (
	"testing"

	"shelfmark/internal/domain"
)

// sampleProjection: toolbar -> [Work -> [A, Sub -> []], B], menu -> [Empty]
func sampleProjection() *domain.Projection {
	root := &domain.Node{ID: domain.RootID, Kind: domain.KindFolder, Children: []*domain.Node{
		{ID: domain.MenuID, Kind: domain.KindFolder, Children: []*domain.Node{
			{ID: "empty", Kind: domain.KindFolder, Title: "Empty"},
		}},
		{ID: domain.ToolbarID, Kind: domain.KindFolder, Children: []*domain.Node{
			{ID: "work", Kind: domain.KindFolder, Title: "Work", Children: []*domain.Node{
				{ID: "a", Kind: domain.KindBookmark, Title: "A", URL: "https://a.example"},
				{ID: "sub", Kind: domain.KindFolder, Title: "Sub"},
			}},
			{ID: "b", Kind: domain.KindBookmark, URL: "https://b.example"},
		}},
	}}
	return domain.ProjectTree(root)
}

func kinds(rows []Row) []RowKind {
	var out []RowKind
	for _, r := range rows {
		out = append(out, r.Kind)
	}
	return out
}

func equalKinds(a, b []RowKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildRows(t *testing.T) {
	tests := []struct {
		name      string
		collapsed domain.CollapsedSet
		hideEmpty bool
		want      []RowKind
	}{
		{
			name: "everything expanded",
			want: []RowKind{
				RowFolder, RowEmpty, // Empty
				RowFolder, RowItem, // Work
				RowFolder, RowEmpty, // Sub
				RowUncategorized, RowItem,
			},
		},
		{
			name:      "collapsed folder hides its bookmarks only",
			collapsed: domain.CollapsedSet{"work": true},
			want: []RowKind{
				RowFolder, RowEmpty,
				RowFolder,
				RowFolder, RowEmpty,
				RowUncategorized, RowItem,
			},
		},
		{
			name:      "hide empty folders",
			hideEmpty: true,
			want: []RowKind{
				RowFolder, RowItem,
				RowUncategorized, RowItem,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRows(sampleProjection(), tt.collapsed, tt.hideEmpty)
			if got := kinds(rows); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildRows_Details(t *testing.T) {
	rows := BuildRows(sampleProjection(), nil, false)

	sub := rows[FindRow(rows, "sub")]
	if sub.Path != "Work" {
		t.Errorf("nested folder Path = %q, want Work", sub.Path)
	}
	if work := rows[FindRow(rows, "work")]; work.Count != 1 || work.Path != "" {
		t.Errorf("Work row = %+v", work)
	}

	b := rows[FindRow(rows, "b")]
	if b.FolderID != "" {
		t.Errorf("uncategorized bookmark FolderID = %q", b.FolderID)
	}
	if b.Title != "https://b.example" {
		t.Errorf("untitled bookmark Title = %q, want its URL", b.Title)
	}
}

func TestBuildRows_EmptyDashboard(t *testing.T) {
	rows := BuildRows(domain.NewProjection(), nil, false)
	if got := kinds(rows); !equalKinds(got, []RowKind{RowUncategorized, RowEmpty}) {
		t.Errorf("kinds = %v", got)
	}
	if BuildRows(nil, nil, false) != nil {
		t.Error("nil projection should give no rows")
	}
}

func TestFindRow(t *testing.T) {
	rows := BuildRows(sampleProjection(), nil, false)
	if FindRow(rows, "") != -1 {
		t.Error("empty id must not match header or placeholder rows")
	}
	if FindRow(rows, "missing") != -1 {
		t.Error("unknown id should give -1")
	}
	if i := FindRow(rows, "a"); i < 0 || rows[i].Item.ID != "a" {
		t.Errorf("FindRow(a) = %d", i)
	}
}

func TestPaginator_ScrollsToCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(10)

	for i := 0; i < 4; i++ {
		p.CursorDown()
	}
	if start, end := p.VisibleRange(); start != 2 || end != 5 {
		t.Errorf("VisibleRange = %d..%d, want 2..5", start, end)
	}

	p.PageDown()
	if p.Cursor() != 7 {
		t.Errorf("Cursor = %d after PageDown, want 7", p.Cursor())
	}

	p.SetTotal(4)
	if p.Cursor() != 3 {
		t.Errorf("Cursor = %d after shrink, want 3", p.Cursor())
	}
	if start, end := p.VisibleRange(); start != 1 || end != 4 {
		t.Errorf("VisibleRange = %d..%d after shrink, want 1..4", start, end)
	}

	p.SetPageSize(10)
	if start, _ := p.VisibleRange(); start != 0 {
		t.Errorf("window should reset to the top when everything fits, start = %d", start)
	}
}

func TestViewState_Status(t *testing.T) {
	var s ViewState

	s.Notify(NoticeMsg{Text: "getTree failed", IsErr: true})
	if !s.StatusErr() || s.Status.Text != "getTree failed" {
		t.Errorf("Status = %+v after an error notice", s.Status)
	}

	s.SetStatus("Moved A", false)
	if s.StatusErr() || s.Status.Kind != StatusInfo {
		t.Errorf("Status = %+v after an info message", s.Status)
	}

	s.SetStatus("", true)
	if s.Status.Kind != StatusNone || RenderStatus(s.Status) != "" {
		t.Errorf("empty text should clear the status, got %+v", s.Status)
	}
}
