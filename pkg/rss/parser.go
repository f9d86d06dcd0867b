// FILE: pkg/rss/parser.go
//
// Parser for the public procurement portal's per-notice RSS 2.0 feed. Item
// descriptions are HTML blobs with "Название: значение" lines; the event
// description line drives a keyword risk classification used by the
// placement-events section.
package rss

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

type Level string

const (
	LevelViolation Level = "violation"
	LevelRisk      Level = "risk"
	LevelInfo      Level = "info"
)

// Event is one normalized feed entry.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PubDate     string `json:"pub_date"`
	Link        string `json:"link"`
	Level       Level  `json:"level"`
	Severity    string `json:"severity"`
}

type feed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string `xml:"title"`
		Items []item `xml:"item"`
	} `xml:"channel"`
}

type item struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Link        string `xml:"link"`
}

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	spacePattern  = regexp.MustCompile(`[ \t]+`)
	eventLineName = "Описание события"
)

// Parse decodes a feed document into normalized events. A document without
// a channel is an error; an empty channel is a valid empty feed.
func Parse(data []byte) ([]Event, error) {
	var f feed
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("rss: %w", err)
	}

	events := make([]Event, 0, len(f.Channel.Items))
	for _, it := range f.Channel.Items {
		desc := eventDescription(it.Description)
		level, severity := classify(it.Title + " " + desc)
		events = append(events, Event{
			Title:       strings.TrimSpace(StripHTML(it.Title)),
			Description: desc,
			PubDate:     strings.TrimSpace(it.PubDate),
			Link:        strings.TrimSpace(it.Link),
			Level:       level,
			Severity:    severity,
		})
	}
	return events, nil
}

// StripHTML removes markup and collapses whitespace, keeping line breaks
// introduced by block tags.
func StripHTML(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = strings.ReplaceAll(s, "<br />", "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	return spacePattern.ReplaceAllString(s, " ")
}

// eventDescription pulls the "Описание события" line out of the HTML blob;
// when absent, the whole stripped text is the description.
func eventDescription(html string) string {
	text := StripHTML(html)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, eventLineName); ok {
			return strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
}

// classify maps feed wording to the report's risk scale.
func classify(text string) (Level, string) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "нарушение") || strings.Contains(lower, "отклонен"):
		return LevelViolation, "high"
	case strings.Contains(lower, "предупреждение") || strings.Contains(lower, "риск"):
		return LevelRisk, "medium"
	}
	return LevelInfo, "low"
}
