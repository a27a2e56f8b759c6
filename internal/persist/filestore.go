package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"tileboard/pkg/geometry"
)

// FileStore is a JSON-file Store implementation, one file per board. It
// exists so the editor runs end to end without an external backend; any
// other Store implementation can be injected in its place.
type FileStore struct {
	mu       sync.Mutex
	path     string
	maxTiles int
	data     boardFile
}

// boardFile is the on-disk document.
type boardFile struct {
	Version   int                      `json:"version"`
	BoardID   string                   `json:"boardId"`
	Viewport  geometry.Viewport        `json:"viewport"`
	Positions map[string]geometry.Rect `json:"positions"`
	ZIndexes  map[string]int           `json:"zIndexes"`
}

// OpenFileStore loads (or initializes) the board file at path. maxTiles caps
// CreateTileAt; zero means the default of 50.
func OpenFileStore(path string, maxTiles int) (*FileStore, error) {
	if maxTiles <= 0 {
		maxTiles = 50
	}
	fs := &FileStore{
		path:     path,
		maxTiles: maxTiles,
		data: boardFile{
			Version:   1,
			Viewport:  geometry.DefaultViewport(),
			Positions: make(map[string]geometry.Rect),
			ZIndexes:  make(map[string]int),
		},
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		return nil, fmt.Errorf("parse board file %s: %w", path, err)
	}
	if fs.data.Positions == nil {
		fs.data.Positions = make(map[string]geometry.Rect)
	}
	if fs.data.ZIndexes == nil {
		fs.data.ZIndexes = make(map[string]int)
	}
	if fs.data.Viewport.Zoom == 0 {
		fs.data.Viewport = geometry.DefaultViewport()
	}
	return fs, nil
}

// Path returns the backing file path.
func (fs *FileStore) Path() string {
	return fs.path
}

// BoardID returns the stored board id ("" for a fresh file).
func (fs *FileStore) BoardID() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.data.BoardID
}

// Viewport returns the stored viewport for the board.
func (fs *FileStore) Viewport() geometry.Viewport {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.data.Viewport
}

// TileIDs returns the ids of all stored tiles.
func (fs *FileStore) TileIDs() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	ids := make([]string, 0, len(fs.data.Positions))
	for id := range fs.data.Positions {
		ids = append(ids, id)
	}
	return ids
}

// ZIndex returns the stored z-index for a tile (0 when absent).
func (fs *FileStore) ZIndex(tileID string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.data.ZIndexes[tileID]
}

// GetPosition implements Store.
func (fs *FileStore) GetPosition(tileID string) (geometry.Rect, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	rect, ok := fs.data.Positions[tileID]
	return rect, ok, nil
}

// UpdatePosition implements Store.
func (fs *FileStore) UpdatePosition(tileID string, rect geometry.Rect) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data.Positions[tileID] = rect
	return fs.saveLocked()
}

// UpdateZIndex implements Store.
func (fs *FileStore) UpdateZIndex(tileID string, z int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data.ZIndexes[tileID] = z
	return fs.saveLocked()
}

// UpdateViewport implements Store.
func (fs *FileStore) UpdateViewport(boardID string, v geometry.Viewport) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data.BoardID = boardID
	fs.data.Viewport = v
	return fs.saveLocked()
}

// BatchUpdatePositions implements Store.
func (fs *FileStore) BatchUpdatePositions(updates []PositionUpdate) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, u := range updates {
		fs.data.Positions[u.TileID] = u.Rect
	}
	return fs.saveLocked()
}

// CreateTileAt implements Store.
func (fs *FileStore) CreateTileAt(boardID string, rect geometry.Rect) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.data.Positions) >= fs.maxTiles {
		return "", ErrTileLimit
	}
	id := uuid.NewString()
	fs.data.BoardID = boardID
	fs.data.Positions[id] = rect
	fs.data.ZIndexes[id] = len(fs.data.Positions)
	if err := fs.saveLocked(); err != nil {
		delete(fs.data.Positions, id)
		delete(fs.data.ZIndexes, id)
		return "", err
	}
	return id, nil
}

// RemoveTile drops a tile's stored position and z-index.
func (fs *FileStore) RemoveTile(tileID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.data.Positions, tileID)
	delete(fs.data.ZIndexes, tileID)
	return fs.saveLocked()
}

func (fs *FileStore) saveLocked() error {
	raw, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fs.path, raw, 0o644)
}
