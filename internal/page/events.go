package page

import (
	"fmt"
	"html/template"
	"io"

	"example.com/events-portal/backend/internal/i18n"
)

type EventsView struct {
	Lang     string
	Title    string
	Subtitle string
}

var eventsTemplate = template.Must(template.New("events").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<main class="events">
<h1 class="events__title">{{.Title}}</h1>
<p class="events__subtitle">{{.Subtitle}}</p>
</main>
</body>
</html>
`))

// NewEventsView собирает данные страницы событий через resolver.
func NewEventsView(lang string, resolver i18n.Resolver) EventsView {
	return EventsView{
		Lang:     lang,
		Title:    resolver.Resolve(i18n.KeyEventsTitle),
		Subtitle: resolver.Resolve(i18n.KeyEventsSubtitle),
	}
}

// Events рендерит страницу событий: заголовок и подзаголовок, без другого видимого текста.
func Events(w io.Writer, lang string, resolver i18n.Resolver) error {
	if err := eventsTemplate.Execute(w, NewEventsView(lang, resolver)); err != nil {
		return fmt.Errorf("render events page: %w", err)
	}

	return nil
}
