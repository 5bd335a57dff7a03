package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a key is missing in the requested locale.
const DefaultLocale = "en"

var (
	// ErrMissingTranslation is returned when no locale in the fallback chain
	// defines a key.
	ErrMissingTranslation = errors.New("i18n: missing translation")
	// ErrInvalidCatalog is returned for malformed catalog files.
	ErrInvalidCatalog = errors.New("i18n: invalid catalog")
)

// Translator resolves a message key for a locale. args is either a single
// map of named parameters or alternating name/value pairs.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// EmbeddedFS returns the bundled en and tr catalogs.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Option customises a Catalog.
type Option func(*Catalog)

// WithFallbackLocale overrides DefaultLocale as the last locale tried.
func WithFallbackLocale(locale string) Option {
	return func(c *Catalog) {
		if trimmed := normaliseLocale(locale); trimmed != "" {
			c.fallback = trimmed
		}
	}
}

// Catalog holds flattened messages per locale. Messages are pongo2 templates
// compiled on first use; a message without template syntax is returned as is.
type Catalog struct {
	fallback string

	mu        sync.RWMutex
	messages  map[string]map[string]string
	templates map[string]*pongo2.Template
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		fallback:  DefaultLocale,
		messages:  make(map[string]map[string]string),
		templates: make(map[string]*pongo2.Template),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Default returns a catalog loaded from the embedded locales.
func Default(opts ...Option) (*Catalog, error) {
	c := New(opts...)
	if err := c.AddFS(EmbeddedFS()); err != nil {
		return nil, err
	}
	return c, nil
}

// AddFS loads every <locale>.yaml / .yml / .json file in fsys. Keys found
// in later files override earlier ones for the same locale.
func (c *Catalog) AddFS(fsys fs.FS) error {
	if c == nil || fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := path.Ext(name)
		switch strings.ToLower(ext) {
		case ".yaml", ".yml", ".json":
		default:
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", name, err)
		}
		locale := normaliseLocale(strings.TrimSuffix(path.Base(name), ext))
		return c.Add(locale, data)
	})
}

// Add merges a YAML (or JSON) message tree for locale. Nested maps are
// flattened into dotted keys.
func (c *Catalog) Add(locale string, data []byte) error {
	if c == nil {
		return nil
	}
	locale = normaliseLocale(locale)
	if locale == "" {
		return fmt.Errorf("%w: empty locale", ErrInvalidCatalog)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, locale, err)
	}
	flat := make(map[string]string)
	if err := flatten("", tree, flat); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.messages[locale]
	if target == nil {
		target = make(map[string]string, len(flat))
		c.messages[locale] = target
	}
	for key, msg := range flat {
		target[key] = msg
		delete(c.templates, locale+"\x00"+key)
	}
	return nil
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Has reports whether key resolves for locale through the fallback chain.
func (c *Catalog) Has(locale, key string) bool {
	_, _, ok := c.lookup(locale, key)
	return ok
}

// Translate implements Translator. The lookup tries the exact locale, its
// base language ("tr-TR" -> "tr") and the fallback locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)
	if c == nil || key == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingTranslation, key)
	}
	resolved, msg, ok := c.lookup(locale, key)
	if !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
	}
	if !strings.Contains(msg, "{{") && !strings.Contains(msg, "{%") {
		return msg, nil
	}

	tpl, err := c.template(resolved, key, msg)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(contextFromArgs(args))
	if err != nil {
		return "", fmt.Errorf("i18n: render %q (%s): %w", key, resolved, err)
	}
	return out, nil
}

func (c *Catalog) lookup(locale, key string) (string, string, bool) {
	if c == nil {
		return "", "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range c.chain(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			return candidate, msg, true
		}
	}
	return "", "", false
}

func (c *Catalog) chain(locale string) []string {
	locale = normaliseLocale(locale)
	var out []string
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		for _, existing := range out {
			if existing == candidate {
				return
			}
		}
		out = append(out, candidate)
	}
	add(locale)
	if base, _, found := strings.Cut(locale, "-"); found {
		add(base)
	}
	add(c.fallback)
	return out
}

func (c *Catalog) template(locale, key, msg string) (*pongo2.Template, error) {
	cacheKey := locale + "\x00" + key
	c.mu.RLock()
	tpl, ok := c.templates[cacheKey]
	c.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	// Messages are plain text; markup escaping is the renderer's concern.
	tpl, err := pongo2.FromString("{% autoescape off %}" + msg + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("i18n: compile %q (%s): %w", key, locale, err)
	}
	c.mu.Lock()
	c.templates[cacheKey] = tpl
	c.mu.Unlock()
	return tpl, nil
}

func contextFromArgs(args []any) pongo2.Context {
	ctx := pongo2.Context{}
	if len(args) == 1 {
		switch typed := args[0].(type) {
		case map[string]any:
			for k, v := range typed {
				ctx[k] = templateValue(v)
			}
			return ctx
		case pongo2.Context:
			for k, v := range typed {
				ctx[k] = templateValue(v)
			}
			return ctx
		}
	}
	for i := 0; i+1 < len(args); i += 2 {
		name, ok := args[i].(string)
		if !ok {
			continue
		}
		ctx[name] = templateValue(args[i+1])
	}
	return ctx
}

// templateValue keeps whole floats from rendering with a fractional part.
func templateValue(value any) any {
	switch typed := value.(type) {
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1<<53 {
			return int64(typed)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return templateValue(float64(typed))
	default:
		return value
	}
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			if err := flatten(full, typed, out); err != nil {
				return err
			}
		case string:
			out[full] = typed
		case nil:
			out[full] = ""
		case bool, int, int64, float64:
			out[full] = fmt.Sprint(typed)
		default:
			return fmt.Errorf("key %q holds unsupported %T", full, value)
		}
	}
	return nil
}

func normaliseLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}
