// Package app wires layout, geometry, compositing and overlays into one
// editing session and exposes the commands the input layer calls.
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"sync"

	"keycap-atlas/internal/atlas"
	"keycap-atlas/internal/compositor"
	srcimage "keycap-atlas/internal/image"
	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"
	"keycap-atlas/internal/overlay"
	"keycap-atlas/internal/render"
	"keycap-atlas/pkg/colorutil"
)

// Config holds the fixed settings of a session. There is no config file;
// callers start from DefaultConfig and override fields.
type Config struct {
	AtlasWidth  int
	AtlasHeight int
	Dimensions  keycap.Dimensions
	Background  color.RGBA
	LabelStyle  overlay.Style
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{
		AtlasWidth:  atlas.DefaultWidth,
		AtlasHeight: atlas.DefaultHeight,
		Dimensions:  keycap.DefaultDimensions(),
		Background:  colorutil.AtlasFill,
		LabelStyle:  overlay.DefaultStyle(),
	}
}

// EventType identifies different session events.
type EventType int

const (
	EventLayoutChanged  EventType = iota // data: *keycap.Board
	EventImageLoaded                     // data: *srcimage.Source
	EventImageRejected                   // data: error
	EventAtlasRepainted                  // data: compositor.Params
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session owns one board and one atlas. Sessions share no state, so a
// process may run several side by side.
type Session struct {
	mu sync.RWMutex

	cfg        Config
	layout     *layout.Layout
	board      *keycap.Board
	billboards []overlay.Billboard
	compositor *compositor.Compositor
	textures   []render.Texture

	// Event listeners
	listeners map[EventType][]EventListener
}

// NewSession creates a session with an empty atlas and no layout.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Dimensions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	comp, err := compositor.New(cfg.AtlasWidth, cfg.AtlasHeight, compositor.WithBackground(cfg.Background))
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:        cfg,
		compositor: comp,
		listeners:  make(map[EventType][]EventListener),
	}, nil
}

// Config returns the session settings.
func (s *Session) Config() Config {
	return s.cfg
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetLayout builds keycap geometry for a layout. On error the previous
// board stays in place.
func (s *Session) SetLayout(l *layout.Layout) (*keycap.Board, error) {
	board, err := keycap.Build(l, s.cfg.Dimensions)
	if err != nil {
		return nil, err
	}
	billboards := overlay.Build(board, s.cfg.LabelStyle)

	s.mu.Lock()
	s.layout = l.Clone()
	s.board = board
	s.billboards = billboards
	s.mu.Unlock()

	log.Printf("Session: layout %q: %d keys, board %.3f x %.3f, %d legend lines",
		board.Name, board.Len(), board.Bounds.Width, board.Bounds.Height, len(billboards))
	s.Emit(EventLayoutChanged, board)
	return board, nil
}

// Layout returns a copy of the current layout, or nil.
func (s *Session) Layout() *layout.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.layout == nil {
		return nil
	}
	return s.layout.Clone()
}

// Board returns the current board, or nil before SetLayout.
func (s *Session) Board() *keycap.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Keycaps returns a snapshot of the current keycaps.
func (s *Session) Keycaps() []keycap.Keycap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.board == nil {
		return nil
	}
	return s.board.Keycaps()
}

// Billboards returns the legend billboards of the current board.
func (s *Session) Billboards() []overlay.Billboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]overlay.Billboard(nil), s.billboards...)
}

// Surface returns the atlas for the render loop to sample.
func (s *Session) Surface() *atlas.Surface {
	return s.compositor.Surface()
}

// Params returns the parameters of the last repaint.
func (s *Session) Params() compositor.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compositor.Params()
}

// Source returns the current photo, or nil.
func (s *Session) Source() *srcimage.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compositor.Source()
}

// BindTexture registers a GPU texture to be marked dirty after every
// repaint.
func (s *Session) BindTexture(t render.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textures = append(s.textures, t)
}

// Repaint redraws the atlas. It returns after the atlas is complete and
// bound textures have been marked dirty.
func (s *Session) Repaint(p compositor.Params, src *srcimage.Source) {
	s.mu.Lock()
	s.compositor.Repaint(p, src)
	textures := append([]render.Texture(nil), s.textures...)
	s.mu.Unlock()

	for _, t := range textures {
		t.MarkDirty()
	}
	s.Emit(EventAtlasRepainted, p)
}

// ClearImage drops the photo and repaints the flat fill with the current
// parameters.
func (s *Session) ClearImage() {
	s.Repaint(s.Params(), nil)
}

// OnParamsChanged repaints the current photo under new parameters.
func (s *Session) OnParamsChanged(p compositor.Params) {
	s.Repaint(p, s.Source())
}

// OnImageLoaded repaints with a newly decoded photo.
func (s *Session) OnImageLoaded(src *srcimage.Source) {
	s.Repaint(s.Params(), src)
	s.Emit(EventImageLoaded, src)
}

// OnClearImage is the input-layer name for ClearImage.
func (s *Session) OnClearImage() {
	s.ClearImage()
}

// LoadImage decodes an upload and, on success, shows it. A decode failure
// leaves the atlas exactly as it was.
func (s *Session) LoadImage(r io.Reader) error {
	src, err := srcimage.Decode(r)
	if err != nil {
		s.reject(err)
		return err
	}
	s.OnImageLoaded(src)
	return nil
}

// LoadImageFile is LoadImage for a file on disk.
func (s *Session) LoadImageFile(path string) error {
	src, err := srcimage.Load(path)
	if err != nil {
		s.reject(err)
		return err
	}
	s.OnImageLoaded(src)
	return nil
}

func (s *Session) reject(err error) {
	log.Printf("Session: image rejected: %v", err)
	s.Emit(EventImageRejected, err)
}
