package ui

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/logger"
)

// Renderer renders the main panel for one family of view kinds.
// At most one renderer is mounted at a time; Unmount must stop any
// background activity the renderer started.
type Renderer interface {
	// Mount is called when navigation lands on a room of this
	// renderer's kind.
	Mount(room *citadel.Room)
	// Unmount is called before another renderer takes over.
	Unmount()
	// SetSize sets the main panel dimensions.
	SetSize(width, height int)
	// View renders the panel.
	View() string
	// Bindings returns the footer key bindings relevant while mounted.
	Bindings() []KeyBinding
}

// Registry is the view dispatcher: it maps a room's view kind to the
// renderer responsible for it and owns the mount/unmount lifecycle.
// Kinds with no registration get the static placeholder.
type Registry struct {
	renderers   map[citadel.ViewKind]Renderer
	placeholder *Placeholder
	mounted     Renderer
	mountedKind citadel.ViewKind
}

// NewRegistry creates a registry with only the placeholder.
func NewRegistry() *Registry {
	return &Registry{
		renderers:   make(map[citadel.ViewKind]Renderer),
		placeholder: NewPlaceholder(),
	}
}

// Register binds a renderer to one or more view kinds.
func (r *Registry) Register(ren Renderer, kinds ...citadel.ViewKind) {
	for _, k := range kinds {
		r.renderers[k] = ren
	}
}

// Mount dispatches a room to its renderer: the previous renderer is
// unmounted first so its background activity (polling) stops, then the
// new one mounts. Returns the renderer now showing.
func (r *Registry) Mount(room *citadel.Room) Renderer {
	if r.mounted != nil {
		r.mounted.Unmount()
	}

	ren, ok := r.renderers[room.CurrentView]
	if !ok {
		logger.WithComponent("views").Debug("no renderer registered",
			"room", room.Name, "view", room.CurrentView.String())
		ren = r.placeholder
	}

	r.mounted = ren
	r.mountedKind = room.CurrentView
	ren.Mount(room)
	return ren
}

// Placeholder returns the fallback renderer so its size can be kept
// current alongside the registered ones.
func (r *Registry) Placeholder() *Placeholder {
	return r.placeholder
}

// Mounted returns the active renderer, or nil before first navigation.
func (r *Registry) Mounted() Renderer {
	return r.mounted
}

// MountedIs reports whether the given renderer is the one currently
// mounted. Background loops use this as their liveness check: when
// their renderer is no longer mounted, they stop re-arming.
func (r *Registry) MountedIs(ren Renderer) bool {
	return r.mounted == ren
}

// Placeholder acknowledges rooms whose view kind has no behavior in
// this client.
type Placeholder struct {
	width  int
	height int
	room   string
	view   citadel.ViewKind
}

// NewPlaceholder creates the shared placeholder renderer.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (p *Placeholder) Mount(room *citadel.Room) {
	p.room = room.Name
	p.view = room.CurrentView
}

func (p *Placeholder) Unmount() {}

func (p *Placeholder) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *Placeholder) Bindings() []KeyBinding {
	return nil
}

func (p *Placeholder) View() string {
	msg := fmt.Sprintf("%s is a %s room.\nThere is no renderer for this view.", p.room, p.view)
	body := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Width(p.width - 4).
		Render(msg)
	return PanelStyle.Width(p.width - 2).Height(p.height - 2).Render(body)
}
