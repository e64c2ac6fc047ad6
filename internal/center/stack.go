package center

import "sync"

// ApplicationStack is the ordered set of applications open in the palette.
// The top of the stack is the application whose footer is shown.
type ApplicationStack interface {
	Push(item *Item, app *Application)
	Remove() (Frame, bool)
	Replace(item *Item, app *Application) bool
	Top() (Frame, bool)
	Len() int
}

// Frame is one open application together with the item that owns it.
type Frame struct {
	Item        *Item
	Application *Application
}

// Stack is a concurrency-safe ApplicationStack. Mutations may come from the
// dispatcher goroutine; onChange fires after every mutation.
type Stack struct {
	mu       sync.RWMutex
	frames   []Frame
	onChange func(frames []Frame)
}

// NewStack creates an empty application stack.
func NewStack() *Stack {
	return &Stack{}
}

// SetOnChange sets a callback that receives a snapshot after each mutation.
func (s *Stack) SetOnChange(fn func(frames []Frame)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Push opens an application on top of the stack.
func (s *Stack) Push(item *Item, app *Application) {
	s.mu.Lock()
	s.frames = append(s.frames, Frame{Item: item, Application: app})
	s.mu.Unlock()
	s.notify()
}

// Remove closes the top application. Returns false if the stack is empty.
func (s *Stack) Remove() (Frame, bool) {
	s.mu.Lock()
	if len(s.frames) == 0 {
		s.mu.Unlock()
		return Frame{}, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.mu.Unlock()
	s.notify()
	return top, true
}

// Replace swaps the top application. Returns false if the stack is empty.
func (s *Stack) Replace(item *Item, app *Application) bool {
	s.mu.Lock()
	if len(s.frames) == 0 {
		s.mu.Unlock()
		return false
	}
	s.frames[len(s.frames)-1] = Frame{Item: item, Application: app}
	s.mu.Unlock()
	s.notify()
	return true
}

// Top returns the application on top of the stack.
func (s *Stack) Top() (Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Frames returns the open applications, bottom first.
func (s *Stack) Frames() []Frame {
	frames, _ := s.snapshot()
	return frames
}

// Reset closes every application.
func (s *Stack) Reset() {
	s.mu.Lock()
	s.frames = nil
	s.mu.Unlock()
	s.notify()
}

func (s *Stack) snapshot() ([]Frame, func([]Frame)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	frames := make([]Frame, len(s.frames))
	copy(frames, s.frames)
	return frames, s.onChange
}

func (s *Stack) notify() {
	frames, fn := s.snapshot()
	if fn != nil {
		fn(frames)
	}
}
