package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

const (
	KeyEventsTitle    = "events.title"
	KeyEventsSubtitle = "events.subtitle"
)

// Resolver возвращает перевод по ключу.
type Resolver interface {
	Resolve(key string) string
}

// ResolverFunc позволяет использовать функцию как Resolver.
type ResolverFunc func(key string) string

func (f ResolverFunc) Resolve(key string) string {
	return f(key)
}

// Messages задает переводы для одной локали.
type Messages map[string]string

var builtinMessages = map[string]Messages{
	"en": {
		KeyEventsTitle:    "Upcoming Events",
		KeyEventsSubtitle: "See what's happening",
	},
	"ru": {
		KeyEventsTitle:    "Ближайшие события",
		KeyEventsSubtitle: "Узнайте, что происходит",
	},
}

type Catalog struct {
	universal *ut.UniversalTranslator
	fallback  string
	matcher   language.Matcher
	supported []string
}

// NewCatalog создает каталог со встроенными переводами en и ru.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	return NewCatalogWithMessages(defaultLocale, builtinMessages)
}

// NewCatalogWithMessages создает каталог с заданными переводами.
func NewCatalogWithMessages(defaultLocale string, messages map[string]Messages) (*Catalog, error) {
	supported := map[string]locales.Translator{
		"en": en.New(),
		"ru": ru.New(),
	}

	fallback, ok := supported[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	universal := ut.New(fallback, supported["en"], supported["ru"])

	// Первой идет локаль по умолчанию: matcher возвращает ее при отсутствии совпадений.
	names := []string{defaultLocale}
	for name := range supported {
		if name != defaultLocale {
			names = append(names, name)
		}
	}

	tags := make([]language.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, language.MustParse(name))
	}

	for locale, entries := range messages {
		trans, found := universal.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("unsupported locale %q", locale)
		}

		for key, text := range entries {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("add %s translation %q: %w", locale, key, err)
			}
		}
	}

	return &Catalog{
		universal: universal,
		fallback:  defaultLocale,
		matcher:   language.NewMatcher(tags),
		supported: names,
	}, nil
}

// Locale подбирает поддерживаемую локаль по параметру запроса или Accept-Language.
func (c *Catalog) Locale(requested, acceptLanguage string) string {
	if requested = strings.ToLower(strings.TrimSpace(requested)); requested != "" {
		if _, found := c.universal.GetTranslator(requested); found {
			return requested
		}
	}

	if strings.TrimSpace(acceptLanguage) == "" {
		return c.fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}

	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.fallback
	}

	return c.supported[index]
}

// Resolver возвращает Resolver для локали; неизвестная локаль заменяется локалью по умолчанию.
func (c *Catalog) Resolver(locale string) Resolver {
	trans, found := c.universal.GetTranslator(locale)
	if !found {
		trans = c.universal.GetFallback()
	}

	return translatorResolver{trans: trans}
}

type translatorResolver struct {
	trans ut.Translator
}

// Resolve возвращает сам ключ, если перевода нет.
func (r translatorResolver) Resolve(key string) string {
	text, err := r.trans.T(key)
	if err != nil {
		return key
	}

	return text
}
