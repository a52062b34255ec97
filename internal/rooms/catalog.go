package rooms

import (
	"errors"
	"strings"
)

// ConnectPrefix is the path segment every room connect path hangs under.
const ConnectPrefix = "connect"

// ErrNoRoomKey is returned when a request path carries no room segment.
var ErrNoRoomKey = errors.New("rooms: path has no room segment")

// Room is one entry of the configured room catalog.
type Room struct {
	ID          int
	Name        string
	ConnectPath string
}

// Catalog enumerates the rooms the transport layer will route here.
type Catalog struct {
	byName map[string]Room
	all    []Room
}

// NewCatalog builds a catalog from room names, assigning connect paths
// of the form /connect/<name>.
func NewCatalog(names []string) *Catalog {
	c := &Catalog{byName: make(map[string]Room, len(names))}
	for i, name := range names {
		if _, dup := c.byName[name]; dup {
			continue
		}
		r := Room{ID: i + 1, Name: name, ConnectPath: "/" + ConnectPrefix + "/" + name}
		c.byName[name] = r
		c.all = append(c.all, r)
	}
	return c
}

// DefaultNames lists the stock rooms served when none are configured.
func DefaultNames() []string {
	return []string{"001", "002", "003", "004", "005", "006"}
}

func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

func (c *Catalog) All() []Room {
	out := make([]Room, len(c.all))
	copy(out, c.all)
	return out
}

// KeyFromPath derives the room key from a request path: the first
// non-empty segment after the optional connect prefix. A query string,
// if present, is ignored.
func KeyFromPath(path string) (string, error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) > 0 && segs[0] == ConnectPrefix {
		segs = segs[1:]
	}
	if len(segs) == 0 {
		return "", ErrNoRoomKey
	}
	return segs[0], nil
}
