package app

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reverse-image-search/internal/search"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func colorFolder(t *testing.T) (query, folder string) {
	t.Helper()
	root := t.TempDir()
	query = filepath.Join(root, "query.png")
	writePNG(t, query, color.RGBA{R: 255, A: 255})

	folder = filepath.Join(root, "candidates")
	require.NoError(t, os.Mkdir(folder, 0o755))
	writePNG(t, filepath.Join(folder, "a_blue.png"), color.RGBA{B: 255, A: 255})
	writePNG(t, filepath.Join(folder, "b_red.png"), color.RGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(folder, "c_green.png"), color.RGBA{G: 255, A: 255})
	return query, folder
}

func TestFindClosestMatch(t *testing.T) {
	query, folder := colorFolder(t)
	s := NewState(nil)

	var events []EventType
	for _, ev := range []EventType{EventImageSelected, EventFolderSelected, EventSearchStarted, EventMatchFound, EventSearchFailed} {
		ev := ev
		s.On(ev, func(interface{}) { events = append(events, ev) })
	}

	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(folder)

	path, err := s.FindClosestMatch()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(folder, "b_red.png"), path)

	sel := s.Snapshot()
	assert.Equal(t, path, sel.ResultPath)
	assert.Equal(t, 1, sel.Match.Index)
	assert.Zero(t, sel.Match.Score)
	assert.Equal(t, folder, sel.RecentDir)
	assert.NotNil(t, s.Result)

	assert.Equal(t, []EventType{EventImageSelected, EventFolderSelected, EventSearchStarted, EventMatchFound}, events)
}

func TestFindClosestMatch_Grayscale(t *testing.T) {
	query, folder := colorFolder(t)
	s := NewState(nil)
	s.SetCompareWithColor(false)

	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(folder)

	path, err := s.FindClosestMatch()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(folder, "b_red.png"), path)
}

func TestFindClosestMatch_MissingSelections(t *testing.T) {
	s := NewState(nil)

	var failed error
	s.On(EventSearchFailed, func(data interface{}) { failed, _ = data.(error) })

	_, err := s.FindClosestMatch()
	assert.ErrorIs(t, err, ErrNoImageSelected)
	assert.ErrorIs(t, err, ErrNoFolderSelected)
	assert.Equal(t, err, failed)

	query, _ := colorFolder(t)
	require.NoError(t, s.SelectImage(query))
	_, err = s.FindClosestMatch()
	assert.NotErrorIs(t, err, ErrNoImageSelected)
	assert.ErrorIs(t, err, ErrNoFolderSelected)
}

func TestFindClosestMatch_EmptyFolder(t *testing.T) {
	query, _ := colorFolder(t)
	s := NewState(nil)
	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(t.TempDir())

	_, err := s.FindClosestMatch()
	assert.ErrorIs(t, err, search.ErrEmptyCandidateSet)
}

func TestSelectFolder_ClearsResult(t *testing.T) {
	query, folder := colorFolder(t)
	s := NewState(nil)
	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(folder)
	_, err := s.FindClosestMatch()
	require.NoError(t, err)

	s.SelectFolder(t.TempDir())
	sel := s.Snapshot()
	assert.Empty(t, sel.ResultPath)
	assert.Nil(t, s.Result)
}

func TestSelectImage_BadFile(t *testing.T) {
	s := NewState(nil)
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	assert.Error(t, s.SelectImage(path))
	assert.Empty(t, s.Snapshot().QueryPath)
}

func TestFindClosestMatch_FolderChangedDuringSearch(t *testing.T) {
	query, folder := colorFolder(t)
	other := t.TempDir()
	s := NewState(nil)
	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(folder)

	s.On(EventSearchStarted, func(interface{}) { s.SelectFolder(other) })
	var matched bool
	s.On(EventMatchFound, func(interface{}) { matched = true })
	var failed error
	s.On(EventSearchFailed, func(data interface{}) { failed, _ = data.(error) })

	path, err := s.FindClosestMatch()
	assert.ErrorIs(t, err, ErrSelectionChanged)
	assert.Empty(t, path)
	assert.False(t, matched)
	assert.ErrorIs(t, failed, ErrSelectionChanged)

	sel := s.Snapshot()
	assert.Equal(t, other, sel.FolderPath)
	assert.Empty(t, sel.ResultPath)
	assert.Nil(t, s.Result)
	assert.False(t, s.Searching())
}

func TestFindClosestMatch_QueryChangedDuringSearch(t *testing.T) {
	query, folder := colorFolder(t)
	s := NewState(nil)
	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(folder)

	s.On(EventSearchStarted, func(interface{}) { require.NoError(t, s.SelectImage(query)) })

	_, err := s.FindClosestMatch()
	assert.ErrorIs(t, err, ErrSelectionChanged)
	assert.Empty(t, s.Snapshot().ResultPath)
}

func TestFindClosestMatch_OneAtATime(t *testing.T) {
	query, folder := colorFolder(t)
	s := NewState(nil)
	require.NoError(t, s.SelectImage(query))
	s.SelectFolder(folder)

	var nested error
	s.On(EventSearchStarted, func(interface{}) {
		assert.True(t, s.Searching())
		_, nested = s.FindClosestMatch()
	})

	path, err := s.FindClosestMatch()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(folder, "b_red.png"), path)
	assert.ErrorIs(t, nested, ErrSearchInProgress)
	assert.False(t, s.Searching())
}

func TestFindClosestMatch_EventPayloads(t *testing.T) {
	query, folder := colorFolder(t)
	s := NewState(nil)

	var selected ImageEvent
	s.On(EventImageSelected, func(data interface{}) { selected, _ = data.(ImageEvent) })
	var found MatchEvent
	s.On(EventMatchFound, func(data interface{}) { found, _ = data.(MatchEvent) })

	require.NoError(t, s.SelectImage(query))
	assert.Equal(t, query, selected.Path)
	require.NotNil(t, selected.Image)
	assert.Equal(t, 64, selected.Image.Width)

	s.SelectFolder(folder)
	_, err := s.FindClosestMatch()
	require.NoError(t, err)

	assert.Equal(t, folder, found.Folder)
	assert.Equal(t, filepath.Join(folder, "b_red.png"), found.Path)
	assert.Equal(t, 1, found.Match.Index)
	assert.NotNil(t, found.Image)
}
