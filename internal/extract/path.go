package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ShopPrefix is the reserved path prefix that redirects extraction to the
// shop-context object instead of the source document.
const ShopPrefix = "shop."

// ErrBadPath reports malformed path syntax. This is a configuration error:
// paths are checked when mappings are registered, not per product.
var ErrBadPath = errors.New("extract: malformed path")

var segmentPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)(?:\[([0-9]+)\])?$`)

type segment struct {
	key      string
	index    int
	hasIndex bool
}

// Path is a parsed extraction path: dot-separated segments, each optionally
// carrying a bracketed non-negative array index, or a shop-context field
// behind the reserved prefix.
type Path struct {
	raw       string
	shopField string
	segments  []segment
}

// ShopLevel reports whether the path addresses the shop context.
func (p *Path) ShopLevel() bool {
	return p.shopField != ""
}

// String returns the original path expression.
func (p *Path) String() string {
	return p.raw
}

// ParsePath parses a path expression. Only syntax problems are errors;
// whether the addressed data exists is decided at extraction time.
func ParsePath(path string) (*Path, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}

	if field, ok := strings.CutPrefix(path, ShopPrefix); ok {
		if field == "" || strings.ContainsAny(field, ".[]") {
			return nil, fmt.Errorf("%w: invalid shop field %q", ErrBadPath, path)
		}
		return &Path{raw: path, shopField: field}, nil
	}

	parts := strings.Split(path, ".")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		m := segmentPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("%w: bad segment %q in %q", ErrBadPath, part, path)
		}
		seg := segment{key: m[1]}
		if m[2] != "" {
			idx, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: bad index in %q", ErrBadPath, path)
			}
			seg.index = idx
			seg.hasIndex = true
		}
		segments = append(segments, seg)
	}
	return &Path{raw: path, segments: segments}, nil
}

// Checker adapts ParsePath to the registry's startup cross-validation.
type Checker struct{}

// CheckPath reports whether a path expression is well formed.
func (Checker) CheckPath(path string) error {
	_, err := ParsePath(path)
	return err
}
