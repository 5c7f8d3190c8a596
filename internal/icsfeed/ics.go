// Package icsfeed renders a set of games as an RFC 5545 calendar feed.
package icsfeed

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
)

const dateTimeLayout = "20060102T150405"

const prodID = "-//hoopscheduler//scheduling core//EN"

// EventSource is the minimal view of a game the feed needs; VenueName and
// VenueAddress come from a join the caller performs, since Game only
// carries a VenueID.
type EventSource struct {
	Game         game.Game
	VenueName    string
	VenueAddress string
	HomeTeamName string
	AwayTeamName string
}

// Feed renders events into a VCALENDAR body honoring a fixed, no-DST
// timezone block, matching spec's "TZID:America/Phoenix with no DST rule".
type Feed struct {
	TZID string
}

func NewFeed(tzid string) *Feed {
	if strings.TrimSpace(tzid) == "" {
		tzid = "America/Phoenix"
	}
	return &Feed{TZID: tzid}
}

// Render emits a complete VCALENDAR document: one VEVENT per source, a
// VTIMEZONE block with no DST transitions, and a 1-hour-before alarm per
// event, as required.
func (f *Feed) Render(sources []EventSource) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")
	b.WriteString("PRODID:" + prodID + "\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	b.WriteString("BEGIN:VTIMEZONE\r\n")
	b.WriteString("TZID:" + f.TZID + "\r\n")
	b.WriteString("BEGIN:STANDARD\r\n")
	b.WriteString("DTSTART:19700101T000000\r\n")
	b.WriteString("TZOFFSETFROM:-0700\r\n")
	b.WriteString("TZOFFSETTO:-0700\r\n")
	b.WriteString("END:STANDARD\r\n")
	b.WriteString("END:VTIMEZONE\r\n")

	for _, s := range sources {
		f.writeEvent(&b, s)
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func (f *Feed) writeEvent(b *strings.Builder, s EventSource) {
	g := s.Game
	start := g.ScheduledStart
	end := g.EndTime()

	summary := fmt.Sprintf("%s vs %s", s.HomeTeamName, s.AwayTeamName)
	if summary == " vs " {
		summary = fmt.Sprintf("Game %s", g.GameNumber)
	}

	location := s.VenueName
	if s.VenueAddress != "" {
		location = location + ", " + s.VenueAddress
	}

	description := fmt.Sprintf("Game %s, %s", g.GameNumber, g.GameType)
	if g.Status == game.StatusCompleted && g.HomeScore != nil && g.AwayScore != nil {
		description = fmt.Sprintf("%s - final score %d-%d", description, *g.HomeScore, *g.AwayScore)
	}

	b.WriteString("BEGIN:VEVENT\r\n")
	b.WriteString("UID:" + g.ID + "\r\n")
	b.WriteString("DTSTAMP:" + time.Now().UTC().Format(dateTimeLayout) + "Z\r\n")
	b.WriteString("DTSTART;TZID=" + f.TZID + ":" + start.Format(dateTimeLayout) + "\r\n")
	b.WriteString("DTEND;TZID=" + f.TZID + ":" + end.Format(dateTimeLayout) + "\r\n")
	b.WriteString("SUMMARY:" + escapeText(summary) + "\r\n")
	if location != "" {
		b.WriteString("LOCATION:" + escapeText(location) + "\r\n")
	}
	b.WriteString("DESCRIPTION:" + escapeText(description) + "\r\n")

	b.WriteString("BEGIN:VALARM\r\n")
	b.WriteString("ACTION:DISPLAY\r\n")
	b.WriteString("DESCRIPTION:" + escapeText(summary) + "\r\n")
	b.WriteString("TRIGGER:-PT1H\r\n")
	b.WriteString("END:VALARM\r\n")

	b.WriteString("END:VEVENT\r\n")
}

// escapeText escapes commas, semicolons, and newlines per RFC 5545 §3.3.11.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		",", "\\,",
		";", "\\;",
		"\n", "\\n",
	)
	return r.Replace(s)
}
