// Package wm owns the authoritative set of stacked windows: which exist, how
// they are layered, which one has focus, and where each one sits. Every
// change is written through to a kv.Store and broadcast to observers.
//
// A Manager is meant to live on a single UI loop and is not safe for
// concurrent use.
package wm

import (
	"StackWin/pkg/geometry"
	"StackWin/pkg/kv"
	"log/slog"
	"slices"
)

const (
	// DefaultNamespace is the record-set key used when Config leaves it empty.
	DefaultNamespace = "stackwin.windows"

	// zSeed is the stacking base; the first window lands on zSeed+1.
	zSeed = 1999
)

// Config configures a Manager.
type Config struct {
	// Namespace is the store key holding the record set.
	Namespace string
	// DataKey is the store key holding per-window application data.
	// Defaults to Namespace + ".data".
	DataKey string
	// Codec encodes both keys. Defaults to JSON.
	Codec Codec
	// Limits drive default placement and minimum sizes. Defaults to
	// geometry.PixelLimits.
	Limits geometry.Limits
	// Viewport is the initial viewport used for default placement.
	Viewport geometry.Size
	Logger   *slog.Logger

	// OnChange observes every new record set.
	OnChange func(records []Record)
	// OnClose is told about every window removed by Close.
	OnClose func(id string)
}

// ContentFunc resolves what a window displays. setData replaces the
// window's application data and persists it.
type ContentFunc func(id string, data any, setData func(any)) any

// View pairs a visible window with its resolved content.
type View struct {
	Record  Record
	Content any
}

// Manager is the window manager.
type Manager struct {
	store     kv.Store
	namespace string
	dataKey   string
	codec     Codec
	limits    geometry.Limits
	viewport  geometry.Size
	log       *slog.Logger
	onChange  func([]Record)
	onClose   func(string)

	records []Record
	data    map[string]any

	observers     map[int]func([]Record)
	observerOrder []int
	nextObserver  int
}

// New creates a manager over store and rehydrates any persisted state.
func New(store kv.Store, cfg Config) *Manager {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.DataKey == "" {
		cfg.DataKey = cfg.Namespace + ".data"
	}
	if cfg.Codec == nil {
		cfg.Codec = JSON
	}
	if cfg.Limits == (geometry.Limits{}) {
		cfg.Limits = geometry.PixelLimits()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	m := &Manager{
		store:     store,
		namespace: cfg.Namespace,
		dataKey:   cfg.DataKey,
		codec:     cfg.Codec,
		limits:    cfg.Limits,
		viewport:  cfg.Viewport,
		log:       cfg.Logger.With("namespace", cfg.Namespace),
		onChange:  cfg.OnChange,
		onClose:   cfg.OnClose,
		data:      make(map[string]any),
		observers: make(map[int]func([]Record)),
	}
	m.load()
	return m
}

// Limits returns the placement limits in use.
func (m *Manager) Limits() geometry.Limits {
	return m.limits
}

// Viewport returns the viewport used for default placement.
func (m *Manager) Viewport() geometry.Size {
	return m.viewport
}

// SetViewport updates the viewport used for default placement.
func (m *Manager) SetViewport(size geometry.Size) {
	m.viewport = size
}

// Open shows the window id. A window that is already open is brought to the
// front instead, so Open is idempotent.
func (m *Manager) Open(id, title string) {
	if m.index(id) >= 0 {
		m.Activate(id)
		return
	}

	rect := m.limits.Initial(m.viewport, len(m.records))
	rec := Record{
		ID:     id,
		Title:  title,
		Active: true,
		ZIndex: m.maxZ() + 1,
		Order:  m.maxOrder() + 1,
	}
	rec.setRect(rect)
	rec.setSaved(rect)

	for i := range m.records {
		m.records[i].Active = false
	}
	m.records = append(m.records, rec)

	m.log.Debug("window opened", "id", id, "z", rec.ZIndex)
	m.commit()
}

// Activate brings id to the top of the stack, un-minimizes it and gives it
// focus. Every activation takes a fresh z-index.
func (m *Manager) Activate(id string) {
	i := m.index(id)
	if i < 0 {
		return
	}

	z := m.maxZ() + 1
	for j := range m.records {
		m.records[j].Active = false
	}
	m.records[i].ZIndex = z
	m.records[i].Active = true
	m.records[i].IsMinimized = false

	m.commit()
}

// Close removes id. When it was the last window the record-set key is
// deleted; application data is kept either way.
func (m *Manager) Close(id string) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.records = slices.Delete(m.records, i, i+1)
	m.log.Debug("window closed", "id", id)

	if len(m.records) == 0 {
		if err := m.store.Delete(m.namespace); err != nil {
			m.log.Error("clearing window state failed", "error", err)
		}
		m.notify()
	} else {
		m.recomputeActive()
		m.commit()
	}

	if m.onClose != nil {
		m.onClose(id)
	}
}

// ReportGeometry records the committed frame and state flags of id.
// A minimized window loses focus; otherwise focus is left alone.
func (m *Manager) ReportGeometry(id string, rect geometry.Rect, maximized, minimized bool, saved geometry.Rect) {
	i := m.index(id)
	if i < 0 {
		return
	}

	r := &m.records[i]
	r.setRect(m.limits.ClampSize(rect))
	r.setSaved(m.limits.ClampSize(saved))
	r.IsMaximized = maximized
	r.IsMinimized = minimized
	if minimized {
		r.Active = false
	}

	m.commit()
}

// Records returns a copy of the record set in creation order.
func (m *Manager) Records() []Record {
	return cloneRecords(m.records)
}

// Record returns the record for id.
func (m *Manager) Record(id string) (Record, bool) {
	i := m.index(id)
	if i < 0 {
		return Record{}, false
	}
	return m.records[i].clone(), true
}

// IsTop reports whether id holds the highest z-index of all windows.
func (m *Manager) IsTop(id string) bool {
	i := m.index(id)
	return i >= 0 && m.records[i].ZIndex == m.maxZ()
}

// Minimized returns the minimized windows in creation order.
func (m *Manager) Minimized() []Record {
	var out []Record
	for _, r := range m.records {
		if r.IsMinimized {
			out = append(out, r.clone())
		}
	}
	return out
}

// Active returns the focused window, if any.
func (m *Manager) Active() (Record, bool) {
	for _, r := range m.records {
		if r.Active {
			return r.clone(), true
		}
	}
	return Record{}, false
}

// AppData returns the application data stored for id, or nil.
func (m *Manager) AppData(id string) any {
	return m.data[id]
}

// SetAppData replaces the application data of id and persists it.
func (m *Manager) SetAppData(id string, data any) {
	m.data[id] = data
	m.saveData()
}

// Contents resolves the content of every visible window, bottom of the
// stack first.
func (m *Manager) Contents(resolve ContentFunc) []View {
	visible := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if !r.IsMinimized {
			visible = append(visible, r.clone())
		}
	}
	slices.SortStableFunc(visible, func(a, b Record) int { return a.ZIndex - b.ZIndex })

	views := make([]View, 0, len(visible))
	for _, r := range visible {
		id := r.ID
		setData := func(data any) { m.SetAppData(id, data) }
		views = append(views, View{Record: r, Content: resolve(id, m.data[id], setData)})
	}
	return views
}

// Subscribe registers fn to receive every new record set. The slice passed
// to fn is a copy owned by the callee.
func (m *Manager) Subscribe(fn func([]Record)) (cancel func()) {
	id := m.nextObserver
	m.nextObserver++
	m.observers[id] = fn
	m.observerOrder = append(m.observerOrder, id)

	return func() {
		if _, ok := m.observers[id]; !ok {
			return
		}
		delete(m.observers, id)
		m.observerOrder = slices.DeleteFunc(m.observerOrder, func(v int) bool { return v == id })
	}
}

// Reset forgets every window and all application data, in memory and in
// the store.
func (m *Manager) Reset() {
	m.records = nil
	m.data = make(map[string]any)
	m.discard()
	m.notify()
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.records, func(r Record) bool { return r.ID == id })
}

func (m *Manager) maxZ() int {
	z := zSeed
	if len(m.records) > 0 {
		z = m.records[0].ZIndex
	}
	for _, r := range m.records {
		z = max(z, r.ZIndex)
	}
	return z
}

func (m *Manager) maxOrder() int {
	n := 0
	for _, r := range m.records {
		n = max(n, r.Order)
	}
	return n
}

// recomputeActive focuses the non-minimized window with the highest z-index.
func (m *Manager) recomputeActive() {
	top := -1
	for i, r := range m.records {
		m.records[i].Active = false
		if r.IsMinimized {
			continue
		}
		if top < 0 || r.ZIndex > m.records[top].ZIndex {
			top = i
		}
	}
	if top >= 0 {
		m.records[top].Active = true
	}
}

func (m *Manager) commit() {
	m.save()
	m.notify()
}

func (m *Manager) notify() {
	if m.onChange != nil {
		m.onChange(cloneRecords(m.records))
	}
	for _, id := range slices.Clone(m.observerOrder) {
		if fn, ok := m.observers[id]; ok {
			fn(cloneRecords(m.records))
		}
	}
}
