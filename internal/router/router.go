// Package router keeps the stack of open screens. Screens navigate by
// returning one of the message types below; only the app model touches
// the router directly.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// PopToRootMsg closes everything above the home screen.
type PopToRootMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, so a finished
// run hands over to its result screen without growing the stack.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens; the root is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

func (r *Router) PopToRoot() {
	r.stack = r.stack[:1]
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Depth() int { return len(r.stack) }

// Breadcrumb lists the titles from the first screen above the root to
// the active one. It is empty on the home screen.
func (r *Router) Breadcrumb() []string {
	trail := make([]string, 0, len(r.stack)-1)
	for _, s := range r.stack[1:] {
		trail = append(trail, s.Title())
	}
	return trail
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	case PopToRootMsg:
		r.PopToRoot()
		return nil
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
