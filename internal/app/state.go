// Package app holds the GUI session state and runs searches on its behalf.
package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"

	"reverse-image-search/internal/catalog"
	"reverse-image-search/internal/config"
	"reverse-image-search/internal/image"
	"reverse-image-search/internal/search"
)

var (
	// ErrNoImageSelected is returned when a search is requested before a query image.
	ErrNoImageSelected = errors.New("no image selected")

	// ErrNoFolderSelected is returned when a search is requested before a folder.
	ErrNoFolderSelected = errors.New("no folder selected")

	// ErrSearchInProgress is returned when a search is requested while another runs.
	ErrSearchInProgress = errors.New("search already in progress")

	// ErrSelectionChanged is returned when the image or folder changed while
	// a search was running. Its result is discarded.
	ErrSelectionChanged = errors.New("selection changed during search")
)

// State holds what the user has selected and the last search result.
type State struct {
	mu sync.RWMutex

	Config *config.Config

	// Directory the next file dialog should open in
	RecentDir string

	// Query image
	QueryPath string
	Query     *image.Buffer

	// Candidate folder
	FolderPath string

	// Last match (empty until a search succeeds)
	ResultPath string
	Result     *image.Buffer
	Match      search.Result

	CompareWithColor bool

	searching atomic.Bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageSelected EventType = iota
	EventFolderSelected
	EventSearchStarted
	EventMatchFound
	EventSearchFailed
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// ImageEvent is the payload of EventImageSelected.
type ImageEvent struct {
	Path  string
	Image *image.Buffer
}

// MatchEvent is the payload of EventMatchFound. It carries the committed
// result so listeners need not read State fields.
type MatchEvent struct {
	Folder string
	Path   string
	Image  *image.Buffer
	Match  search.Result
}

// NewState creates a session using cfg (nil means defaults).
func NewState(cfg *config.Config) *State {
	if cfg == nil {
		cfg = config.Default()
	}
	return &State{
		Config:           cfg,
		CompareWithColor: cfg.Search.CompareWithColor,
		listeners:        make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SelectImage loads path as the query image.
func (s *State) SelectImage(path string) error {
	buf, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.QueryPath = path
	s.Query = buf
	s.RecentDir = filepath.Dir(path)
	s.mu.Unlock()

	log.Printf("Selected image %s (%dx%d)", path, buf.Width, buf.Height)
	s.Emit(EventImageSelected, ImageEvent{Path: path, Image: buf})
	return nil
}

// SelectFolder sets the candidate folder and clears any previous result.
func (s *State) SelectFolder(path string) {
	s.mu.Lock()
	s.FolderPath = path
	s.RecentDir = path
	s.ResultPath = ""
	s.Result = nil
	s.Match = search.Result{}
	s.mu.Unlock()

	log.Printf("Selected folder %s", path)
	s.Emit(EventFolderSelected, path)
}

// SetRecentDir sets where the next file dialog opens.
func (s *State) SetRecentDir(dir string) {
	s.mu.Lock()
	s.RecentDir = dir
	s.mu.Unlock()
}

// SetCompareWithColor toggles colour versus grayscale comparison.
func (s *State) SetCompareWithColor(on bool) {
	s.mu.Lock()
	s.CompareWithColor = on
	s.mu.Unlock()
}

// Searching reports whether a search is running.
func (s *State) Searching() bool {
	return s.searching.Load()
}

// Snapshot returns a copy of the selection fields without the listeners.
func (s *State) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Selection{
		RecentDir:  s.RecentDir,
		QueryPath:  s.QueryPath,
		FolderPath: s.FolderPath,
		ResultPath: s.ResultPath,
		Match:      s.Match,
	}
}

// Selection is a read-only view of State.
type Selection struct {
	RecentDir  string
	QueryPath  string
	FolderPath string
	ResultPath string
	Match      search.Result
}

// FindClosestMatch loads the folder's candidates and searches them for the
// query image. Both selections must be made first; when both are missing
// the returned error wraps both sentinels. Only one search runs at a time,
// and a result is kept only if the image and folder are unchanged when it
// completes.
func (s *State) FindClosestMatch() (string, error) {
	if !s.searching.CompareAndSwap(false, true) {
		return "", ErrSearchInProgress
	}
	defer s.searching.Store(false)

	s.mu.RLock()
	query := s.Query
	folder := s.FolderPath
	opts := s.Config.SearchOptions()
	opts.UseColor = s.CompareWithColor
	exts := s.Config.Catalog.Extensions
	s.mu.RUnlock()

	var missing []error
	if query == nil {
		missing = append(missing, ErrNoImageSelected)
	}
	if folder == "" {
		missing = append(missing, ErrNoFolderSelected)
	}
	if len(missing) > 0 {
		err := errors.Join(missing...)
		s.Emit(EventSearchFailed, err)
		return "", err
	}

	s.Emit(EventSearchStarted, folder)

	log.Println("Loading images...")
	set, err := catalog.Load(folder, exts)
	if err != nil {
		s.Emit(EventSearchFailed, err)
		return "", err
	}

	log.Println("Searching...")
	match, err := search.FindBestMatch(query, set.Images, opts)
	if err != nil {
		err = fmt.Errorf("search %s: %w", folder, err)
		s.Emit(EventSearchFailed, err)
		return "", err
	}
	log.Printf("Lowest difference: %g", match.Score)
	log.Printf("Image index: %d (%d of %d scanned)", match.Index, match.Scanned, set.Len())

	path := set.Paths[match.Index]
	log.Printf("Image path: %s", path)

	s.mu.Lock()
	if s.FolderPath != folder || s.Query != query {
		s.mu.Unlock()
		log.Printf("Discarding result for %s: selection changed", folder)
		s.Emit(EventSearchFailed, ErrSelectionChanged)
		return "", ErrSelectionChanged
	}
	s.ResultPath = path
	s.Result = set.Images[match.Index]
	s.Match = match
	s.mu.Unlock()

	s.Emit(EventMatchFound, MatchEvent{
		Folder: folder,
		Path:   path,
		Image:  set.Images[match.Index],
		Match:  match,
	})
	return path, nil
}
