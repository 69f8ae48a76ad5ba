package services

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"sync"

	"github.com/daniarfurniture/finance-api/models"

	"github.com/spf13/viper"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Version int `mapstructure:"version"`
	Buckets []struct {
		Bucket string   `mapstructure:"bucket"`
		Types  []string `mapstructure:"types"`
	} `mapstructure:"buckets"`
	Legacy []struct {
		From string `mapstructure:"from"`
		To   string `mapstructure:"to"`
	} `mapstructure:"legacy"`
}

// Catalog maps transaction types to buckets. It is immutable once loaded.
type Catalog struct {
	version int
	index   map[string]models.Bucket
	types   map[models.Bucket][]string
	legacy  map[string]string
}

var (
	defaultCatalog *Catalog
	catalogOnce    sync.Once
)

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	catalogOnce.Do(func() {
		c, err := parseCatalog(viper.New(), bytes.NewReader(embeddedCatalog))
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a catalog file. An empty path returns DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := decodeCatalog(v)
	if err != nil {
		return nil, err
	}
	log.Printf("📚 Category catalog v%d loaded from %s (%d types)", c.version, path, len(c.index))
	return c, nil
}

func parseCatalog(v *viper.Viper, r *bytes.Reader) (*Catalog, error) {
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decodeCatalog(v)
}

func decodeCatalog(v *viper.Viper) (*Catalog, error) {
	var raw catalogFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		version: raw.Version,
		index:   make(map[string]models.Bucket),
		types:   make(map[models.Bucket][]string),
		legacy:  make(map[string]string),
	}
	known := make(map[models.Bucket]bool, len(models.Buckets))
	for _, b := range models.Buckets {
		known[b] = true
	}

	for _, group := range raw.Buckets {
		b := models.Bucket(group.Bucket)
		if !known[b] {
			return nil, fmt.Errorf("catalog: unknown bucket %q", group.Bucket)
		}
		for _, t := range group.Types {
			if prev, dup := c.index[t]; dup {
				return nil, fmt.Errorf("catalog: type %q listed under %s and %s", t, prev, b)
			}
			c.index[t] = b
			c.types[b] = append(c.types[b], t)
		}
	}

	for _, alias := range raw.Legacy {
		target, ok := c.index[alias.To]
		if !ok {
			return nil, fmt.Errorf("catalog: legacy type %q points at unknown type %q", alias.From, alias.To)
		}
		if _, dup := c.index[alias.From]; dup {
			return nil, fmt.Errorf("catalog: legacy type %q is also a current type", alias.From)
		}
		c.index[alias.From] = target
		c.legacy[alias.From] = alias.To
	}

	return c, nil
}

// Classify returns the bucket for a transaction type. Unknown types fall
// into PENGELUARAN.
func (c *Catalog) Classify(transactionType string) models.Bucket {
	if b, ok := c.index[transactionType]; ok {
		return b
	}
	return models.BucketPengeluaran
}

// Types lists the current (non-legacy) types of a bucket in catalog order.
func (c *Catalog) Types(b models.Bucket) []string {
	out := make([]string, len(c.types[b]))
	copy(out, c.types[b])
	return out
}

// Canonical returns the current spelling of a legacy type.
func (c *Catalog) Canonical(transactionType string) (string, bool) {
	to, ok := c.legacy[transactionType]
	return to, ok
}

// Legacy returns a copy of the legacy spelling table.
func (c *Catalog) Legacy() map[string]string {
	out := make(map[string]string, len(c.legacy))
	for k, v := range c.legacy {
		out[k] = v
	}
	return out
}

func (c *Catalog) Version() int { return c.version }
