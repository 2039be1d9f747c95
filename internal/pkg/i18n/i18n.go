package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "ro"

type Translations map[string]string

//go:embed locales/*.yaml
var embedded embed.FS

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

func init() {
	if err := LoadTranslations(embedded, "locales"); err != nil {
		panic(fmt.Sprintf("i18n: %v", err))
	}
}

// LoadTranslations reads every <locale>.yaml under dir. Nested keys are
// flattened with dots, so validation.booking.phone.required is one key.
func LoadTranslations(fsys fs.FS, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := path.Join(dir, entry.Name())

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return err
		}

		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		trans := make(Translations)
		flatten("", tree, trans)
		locales[locale] = trans
	}

	return nil
}

func flatten(prefix string, node map[string]any, out Translations) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Translate returns the key itself when no translation exists.
func Translate(locale, key string) string {
	if val, ok := Lookup(locale, key); ok {
		return val
	}
	return key
}

func Lookup(locale, key string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val, true
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val, true
			}
		}
	}

	return "", false
}

// T formats a message from the default locale.
func T(key string, args ...any) string {
	msg := Translate(DefaultLocale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
