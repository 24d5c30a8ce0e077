package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// DefaultLanguage is used when a request names no supported language.
const DefaultLanguage = "en"

// Catalog holds flattened messages per language. Nested YAML keys become
// dotted keys: Global: {Sunday: ...} is looked up as "Global.Sunday".
type Catalog struct {
	defaultLang string
	langs       []string // defaultLang first, the order the matcher was built with
	matcher     language.Matcher
	messages    map[string]map[string]string
}

// Default loads the locale files compiled into the binary.
func Default() (*Catalog, error) {
	return Embedded(DefaultLanguage)
}

// Embedded loads the compiled-in locale files with another default language.
func Embedded(defaultLang string) (*Catalog, error) {
	return Load(embedded, "locales", defaultLang)
}

// Load reads every <lang>.yaml file in dir. defaultLang must be one of them.
func Load(fsys fs.FS, dir, defaultLang string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory %s: %w", dir, err)
	}

	messages := make(map[string]map[string]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		lang := strings.TrimSuffix(e.Name(), ".yaml")
		raw, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", lang, err)
		}
		var tree map[string]interface{}
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", lang, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		messages[lang] = flat
	}
	return NewCatalog(defaultLang, messages)
}

// NewCatalog builds a catalog from already flattened messages.
func NewCatalog(defaultLang string, messages map[string]map[string]string) (*Catalog, error) {
	if _, ok := messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no messages", defaultLang)
	}

	others := make([]string, 0, len(messages)-1)
	for lang := range messages {
		if lang != defaultLang {
			others = append(others, lang)
		}
	}
	sort.Strings(others)
	langs := append([]string{defaultLang}, others...)

	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid locale name %q: %w", lang, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		defaultLang: defaultLang,
		langs:       langs,
		matcher:     language.NewMatcher(tags),
		messages:    messages,
	}, nil
}

// Languages lists the supported languages, default first.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.langs))
	copy(out, c.langs)
	return out
}

// Match picks the supported language closest to want. want may be a single
// tag ("ar-LB") or an Accept-Language header value.
func (c *Catalog) Match(want string) string {
	if want == "" {
		return c.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(want)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.langs[idx]
}

// Translator returns a Translator for the best match of lang.
func (c *Catalog) Translator(lang string) Translator {
	return &catalogTranslator{catalog: c, lang: c.Match(lang)}
}

type catalogTranslator struct {
	catalog *Catalog
	lang    string
}

// Translate falls back to the default language and then to the key.
func (t *catalogTranslator) Translate(key string) string {
	if msg, ok := t.catalog.messages[t.lang][key]; ok {
		return msg
	}
	if msg, ok := t.catalog.messages[t.catalog.defaultLang][key]; ok {
		return msg
	}
	return key
}

// Lang reports the language this translator resolved to.
func (t *catalogTranslator) Lang() string { return t.lang }

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
