package page

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/events-portal/backend/internal/i18n"
)

var stubResolver = i18n.ResolverFunc(func(key string) string {
	switch key {
	case "events.title":
		return "Upcoming Events"
	case "events.subtitle":
		return "See what's happening"
	default:
		return "unexpected:" + key
	}
})

// TestEventsRendersTranslations проверяет порядок и состав видимого текста.
func TestEventsRendersTranslations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Events(&buf, "en", stubResolver))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "Upcoming Events", doc.Find("h1").Text())
	assert.Equal(t, "See what's happening", doc.Find("p").Text())

	visible := strings.Fields(doc.Find("body").Text())
	assert.Equal(t, strings.Fields("Upcoming Events See what's happening"), visible)
	assert.Empty(t, strings.TrimSpace(doc.Find("head").Text()))
}

// TestEventsEscapesTranslations проверяет экранирование HTML в переводах.
func TestEventsEscapesTranslations(t *testing.T) {
	resolver := i18n.ResolverFunc(func(key string) string { return "<script>alert(1)</script>" })

	var buf bytes.Buffer
	require.NoError(t, Events(&buf, "en", resolver))

	assert.NotContains(t, buf.String(), "<script>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

// TestEventsWriteError проверяет проброс ошибки записи.
func TestEventsWriteError(t *testing.T) {
	err := Events(failingWriter{}, "en", stubResolver)
	assert.Error(t, err)
}

// TestNewEventsView проверяет сборку данных страницы.
func TestNewEventsView(t *testing.T) {
	view := NewEventsView("ru", stubResolver)
	assert.Equal(t, EventsView{Lang: "ru", Title: "Upcoming Events", Subtitle: "See what's happening"}, view)
}
