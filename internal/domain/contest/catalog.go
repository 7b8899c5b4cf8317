package contest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"gopkg.in/yaml.v3"
)

// Catalog holds the contest formats a deployment recognizes.
type Catalog struct {
	formats    map[string]Constraints
	defaultKey string
}

func NewCatalog(defaultKey string, formats ...Constraints) (*Catalog, error) {
	defaultKey = strings.TrimSpace(defaultKey)
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: at least one format is required", ErrInvalidConstraints)
	}

	byKey := make(map[string]Constraints, len(formats))
	for _, f := range formats {
		f.Key = strings.TrimSpace(f.Key)
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byKey[f.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate format key %q", ErrInvalidConstraints, f.Key)
		}
		byKey[f.Key] = f.Clone()
	}

	if defaultKey == "" {
		defaultKey = formats[0].Key
	}
	if _, ok := byKey[defaultKey]; !ok {
		return nil, fmt.Errorf("%w: default format %q is not defined", ErrInvalidConstraints, defaultKey)
	}

	return &Catalog{formats: byKey, defaultKey: defaultKey}, nil
}

// DefaultCatalog contains only the built-in t20 format.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultFormatKey, DefaultConstraints())
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve returns the constraints for key, or the default format when key is empty.
func (c *Catalog) Resolve(key string) (Constraints, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = c.defaultKey
	}
	f, ok := c.formats[key]
	if !ok {
		return Constraints{}, fmt.Errorf("%w: %s", ErrUnknownFormat, key)
	}
	return f.Clone(), nil
}

func (c *Catalog) DefaultKey() string {
	return c.defaultKey
}

func (c *Catalog) Keys() []string {
	out := make([]string, 0, len(c.formats))
	for key := range c.formats {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

type catalogFile struct {
	Default string       `yaml:"default"`
	Formats []formatFile `yaml:"formats"`
}

type formatFile struct {
	Key        string           `yaml:"key"`
	Version    int              `yaml:"version"`
	RosterSize int              `yaml:"roster_size"`
	CreditCap  string           `yaml:"credit_cap"`
	Roles      map[string][]int `yaml:"roles"`
}

// LoadCatalogFile reads a YAML catalog. An empty path yields DefaultCatalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contest formats file %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidConstraints, err)
	}

	formats := make([]Constraints, 0, len(file.Formats))
	for i, f := range file.Formats {
		converted, err := f.toConstraints()
		if err != nil {
			return nil, fmt.Errorf("format #%d: %w", i, err)
		}
		formats = append(formats, converted)
	}

	return NewCatalog(file.Default, formats...)
}

func (f formatFile) toConstraints() (Constraints, error) {
	capValue, err := player.ParseCredits(f.CreditCap)
	if err != nil {
		return Constraints{}, fmt.Errorf("%w: format=%s credit_cap: %v", ErrInvalidConstraints, f.Key, err)
	}

	bounds := make(map[player.Role]Bounds, len(f.Roles))
	for rawRole, pair := range f.Roles {
		role, ok := player.ParseRole(rawRole)
		if !ok {
			return Constraints{}, fmt.Errorf("%w: format=%s unknown role %q", ErrInvalidConstraints, f.Key, rawRole)
		}
		if len(pair) != 2 {
			return Constraints{}, fmt.Errorf("%w: format=%s role=%s expects [min, max]", ErrInvalidConstraints, f.Key, role)
		}
		if _, dup := bounds[role]; dup {
			return Constraints{}, fmt.Errorf("%w: format=%s role=%s listed twice", ErrInvalidConstraints, f.Key, role)
		}
		bounds[role] = Bounds{Min: pair[0], Max: pair[1]}
	}

	version := f.Version
	if version == 0 {
		version = 1
	}

	return Constraints{
		Key:        f.Key,
		Version:    version,
		RosterSize: f.RosterSize,
		CreditCap:  capValue,
		RoleBounds: bounds,
	}, nil
}
