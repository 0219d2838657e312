package telegram

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrButtonNotMounted = errors.New("main button is not mounted")
	ErrButtonDisabled   = errors.New("main button is disabled")
)

// ButtonParams is a partial update of the button; nil fields are left as is.
type ButtonParams struct {
	Text            *string
	IsEnabled       *bool
	IsVisible       *bool
	IsLoaderVisible *bool
}

type ButtonState struct {
	Text            string `json:"text"`
	IsMounted       bool   `json:"is_mounted"`
	IsEnabled       bool   `json:"is_enabled"`
	IsVisible       bool   `json:"is_visible"`
	IsLoaderVisible bool   `json:"is_loader_visible"`
}

type ClickHandler func(ctx context.Context) error

// MainButton mirrors the Mini App's bottom action button. The client renders
// State and reports presses through Click.
type MainButton struct {
	mu       sync.Mutex
	state    ButtonState
	handlers map[uint64]ClickHandler
	nextID   uint64
}

func NewMainButton() *MainButton {
	return &MainButton{handlers: make(map[uint64]ClickHandler)}
}

func (b *MainButton) Mount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsMounted = true
}

func (b *MainButton) IsMounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.IsMounted
}

func (b *MainButton) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsMounted = false
}

func (b *MainButton) SetParams(p ButtonParams) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.Text != nil {
		b.state.Text = *p.Text
	}
	if p.IsEnabled != nil {
		b.state.IsEnabled = *p.IsEnabled
	}
	if p.IsVisible != nil {
		b.state.IsVisible = *p.IsVisible
	}
	if p.IsLoaderVisible != nil {
		b.state.IsLoaderVisible = *p.IsLoaderVisible
	}
}

// OnClick subscribes h and returns the function that removes it.
func (b *MainButton) OnClick(h ClickHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
		})
	}
}

// Click runs the subscribed handlers when the button can be pressed.
func (b *MainButton) Click(ctx context.Context) error {
	b.mu.Lock()
	if !b.state.IsMounted || !b.state.IsVisible {
		b.mu.Unlock()
		return ErrButtonNotMounted
	}
	if !b.state.IsEnabled || b.state.IsLoaderVisible {
		b.mu.Unlock()
		return ErrButtonDisabled
	}
	handlers := make([]ClickHandler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *MainButton) State() ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *MainButton) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func String(s string) *string { return &s }

func Bool(v bool) *bool { return &v }
