package tui

import (
	"context"
	"fmt"
	"unsafe"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	"tasnim.dev/idc-audit/internal/tui/theme"
)

// tableDataMsg delivers a full result set to the view identified by viewID.
// hasMore is only meaningful for paged fetches.
type tableDataMsg struct {
	viewID  uintptr
	items   any
	hasMore bool
}

// tableMoreDataMsg appends a further page to an already loaded view.
type tableMoreDataMsg struct {
	viewID  uintptr
	items   any
	hasMore bool
}

// TableViewConfig configures a generic table view.
type TableViewConfig[T any] struct {
	Title       string
	LoadingText string
	Columns     []table.Column
	// PageSize caps rows shown per page. Defaults to 20.
	PageSize int

	// FetchFunc loads the full result set. FetchFuncPaged loads the first
	// page and reports whether more pages exist; use it together with
	// LoadMoreFunc for APIs that page server-side.
	FetchFunc      func(ctx context.Context) ([]T, error)
	FetchFuncPaged func(ctx context.Context) ([]T, bool, error)
	LoadMoreFunc   func(ctx context.Context) ([]T, bool, error)

	RowMapper   func(item T) table.Row
	CopyIDFunc  func(item T) string
	CopyARNFunc func(item T) string
	SummaryFunc func(items []T) string
	OnEnter     func(item T) tea.Cmd
	// KeyHandlers maps extra key presses to per-item commands.
	KeyHandlers map[string]func(item T) tea.Cmd
	// HeightOffset is subtracted from the height given to SetSize to leave
	// room for summary lines above the table.
	HeightOffset int
}

// TableView is a generic list screen backed by a bubbles table. It owns
// fetching, client-side pagination, and the clipboard accessors.
type TableView[T any] struct {
	config TableViewConfig[T]
	items  []T
	// displayItems backs displayRows one-to-one, so the cursor resolves to
	// the right item while a filter narrows the visible rows.
	displayItems []T
	allRows      []table.Row
	displayRows  []table.Row
	currentPage  int
	pageSize     int
	hasMore      bool

	table   table.Model
	spinner spinner.Model
	loading bool
	err     error
	cancel  context.CancelFunc
}

// NewTableView creates a table view from the given config.
func NewTableView[T any](cfg TableViewConfig[T]) *TableView[T] {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	t := table.New(
		table.WithColumns(cfg.Columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(16),
	)
	t.SetStyles(theme.DefaultTableStyles())

	return &TableView[T]{
		config:   cfg,
		pageSize: pageSize,
		table:    t,
		spinner:  theme.NewSpinner(),
		loading:  true,
	}
}

func (v *TableView[T]) Title() string { return v.config.Title }

func (v *TableView[T]) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetchData())
}

// viewID distinguishes this view's messages from those of stale siblings
// of the same type lower in the stack.
func (v *TableView[T]) viewID() uintptr {
	return uintptr(unsafe.Pointer(v))
}

func (v *TableView[T]) fetchData() tea.Cmd {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	id := v.viewID()

	if paged := v.config.FetchFuncPaged; paged != nil {
		return func() tea.Msg {
			items, hasMore, err := paged(ctx)
			if err != nil {
				return errViewMsg{err: err}
			}
			return tableDataMsg{viewID: id, items: items, hasMore: hasMore}
		}
	}

	fetch := v.config.FetchFunc
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := fetch(ctx)
		if err != nil {
			return errViewMsg{err: err}
		}
		return tableDataMsg{viewID: id, items: items}
	}
}

func (v *TableView[T]) loadMore() tea.Cmd {
	lm := v.config.LoadMoreFunc
	if lm == nil || !v.hasMore {
		return nil
	}
	id := v.viewID()
	return func() tea.Msg {
		items, hasMore, err := lm(context.Background())
		if err != nil {
			return errViewMsg{err: err}
		}
		return tableMoreDataMsg{viewID: id, items: items, hasMore: hasMore}
	}
}

// Cancel aborts any in-flight fetch. Safe to call repeatedly.
func (v *TableView[T]) Cancel() {
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *TableView[T]) totalPages() int {
	if len(v.displayRows) == 0 {
		return 0
	}
	return (len(v.displayRows) + v.pageSize - 1) / v.pageSize
}

func (v *TableView[T]) applyPage() {
	start := v.currentPage * v.pageSize
	end := start + v.pageSize
	if start > len(v.displayRows) {
		start = len(v.displayRows)
	}
	if end > len(v.displayRows) {
		end = len(v.displayRows)
	}
	v.table.SetRows(v.displayRows[start:end])
}

func (v *TableView[T]) nextPage() {
	if v.currentPage < v.totalPages()-1 {
		v.currentPage++
		v.applyPage()
		v.table.SetCursor(0)
	}
}

func (v *TableView[T]) prevPage() {
	if v.currentPage > 0 {
		v.currentPage--
		v.applyPage()
		v.table.SetCursor(0)
	}
}

func (v *TableView[T]) paginationStatus() string {
	total := len(v.displayRows)
	pages := v.totalPages()
	count := fmt.Sprintf("%d", total)
	if v.hasMore {
		count += "+"
	}
	switch {
	case pages > 1 && v.hasMore:
		return fmt.Sprintf("Page %d/%d (%s items) · L to load more", v.currentPage+1, pages, count)
	case pages > 1:
		return fmt.Sprintf("Page %d/%d (%s items)", v.currentPage+1, pages, count)
	case v.hasMore:
		return fmt.Sprintf("%s items · L to load more", count)
	default:
		return ""
	}
}

// selectedItem resolves the table cursor against the current page of the
// visible rows, filtered or not.
func (v *TableView[T]) selectedItem() (T, bool) {
	var zero T
	idx := v.currentPage*v.pageSize + v.table.Cursor()
	if idx < 0 || idx >= len(v.displayItems) {
		return zero, false
	}
	return v.displayItems[idx], true
}

// CopyID returns the selected item's identifier for clipboard copy.
func (v *TableView[T]) CopyID() string {
	if v.config.CopyIDFunc == nil {
		return ""
	}
	item, ok := v.selectedItem()
	if !ok {
		return ""
	}
	return v.config.CopyIDFunc(item)
}

// CopyARN returns the selected item's ARN, falling back to CopyID.
func (v *TableView[T]) CopyARN() string {
	if v.config.CopyARNFunc == nil {
		return v.CopyID()
	}
	item, ok := v.selectedItem()
	if !ok {
		return ""
	}
	return v.config.CopyARNFunc(item)
}

// AllRows returns the unfiltered row set.
func (v *TableView[T]) AllRows() []table.Row { return v.allRows }

// SetRows replaces the visible rows, e.g. when a filter is applied, resets
// pagination, and realigns the items backing the visible rows.
func (v *TableView[T]) SetRows(rows []table.Row) {
	v.displayRows = rows
	v.displayItems = v.itemsForRows(rows)
	v.currentPage = 0
	v.applyPage()
}

// itemsForRows resolves each visible row back to the item it renders. A
// filtered row set is an order-preserving subset of allRows, so one forward
// scan aligns them.
func (v *TableView[T]) itemsForRows(rows []table.Row) []T {
	matched := make([]T, 0, len(rows))
	j := 0
	for _, row := range rows {
		for j < len(v.allRows) && !rowsEqual(v.allRows[j], row) {
			j++
		}
		if j >= len(v.allRows) {
			break
		}
		matched = append(matched, v.items[j])
		j++
	}
	return matched
}

func rowsEqual(a, b table.Row) bool {
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

// SetSize resizes the embedded table.
func (v *TableView[T]) SetSize(width, height int) {
	h := height - v.config.HeightOffset
	if h < 3 {
		h = 3
	}
	v.table.SetWidth(width)
	v.table.SetHeight(h)
}

func (v *TableView[T]) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			v.loading = true
			v.err = nil
			return v, tea.Batch(v.spinner.Tick, v.fetchData())
		case "enter":
			if v.config.OnEnter != nil && !v.loading {
				if item, ok := v.selectedItem(); ok {
					return v, v.config.OnEnter(item)
				}
			}
			return v, nil
		case "n":
			v.nextPage()
			return v, nil
		case "p":
			v.prevPage()
			return v, nil
		case "L":
			return v, v.loadMore()
		default:
			if handler, ok := v.config.KeyHandlers[msg.String()]; ok && !v.loading {
				if item, found := v.selectedItem(); found {
					return v, handler(item)
				}
				return v, nil
			}
			var cmd tea.Cmd
			v.table, cmd = v.table.Update(msg)
			return v, cmd
		}

	case tableDataMsg:
		if msg.viewID != v.viewID() {
			return v, nil
		}
		items, ok := msg.items.([]T)
		if !ok {
			return v, nil
		}
		v.items = items
		v.displayItems = items
		v.loading = false
		v.err = nil
		rows := make([]table.Row, len(items))
		for i, item := range items {
			rows[i] = v.config.RowMapper(item)
		}
		v.allRows = rows
		v.displayRows = rows
		if v.config.FetchFuncPaged != nil {
			v.hasMore = msg.hasMore
		} else {
			v.hasMore = v.config.LoadMoreFunc != nil
		}
		v.currentPage = 0
		v.applyPage()
		return v, nil

	case tableMoreDataMsg:
		if msg.viewID != v.viewID() {
			return v, nil
		}
		items, ok := msg.items.([]T)
		if !ok {
			return v, nil
		}
		v.items = append(v.items, items...)
		v.displayItems = append(v.displayItems, items...)
		for _, item := range items {
			row := v.config.RowMapper(item)
			v.allRows = append(v.allRows, row)
			v.displayRows = append(v.displayRows, row)
		}
		v.hasMore = msg.hasMore
		v.applyPage()
		return v, nil

	case errViewMsg:
		v.err = msg.err
		v.loading = false
		return v, nil

	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *TableView[T]) View() string {
	if v.loading {
		text := v.config.LoadingText
		if text == "" {
			text = "Loading..."
		}
		return "\n" + theme.LoadingStyle.Render(v.spinner.View()+" "+text) + "\n"
	}
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err)) +
			"\n\n" + theme.HelpStyle.Render("Press r to retry • Esc to go back")
	}

	var out string
	if v.config.SummaryFunc != nil {
		out = v.config.SummaryFunc(v.items) + "\n"
	}
	out += v.table.View()
	if len(v.items) == 0 {
		out += "\n" + theme.MutedStyle.Render("No results.")
	}
	if status := v.paginationStatus(); status != "" {
		out += "\n" + theme.MutedStyle.Render(status)
	}
	return out
}
