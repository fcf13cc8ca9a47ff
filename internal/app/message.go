package app

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"event_reminder/internal/domain/event"
	"event_reminder/internal/domain/notify"
	"event_reminder/internal/domain/reminder"
)

const (
	displayDateLayout     = "02.01.2006"
	displayDateTimeLayout = "02.01.2006 15:04"
	manualLabelSuffix     = " (sent manually)"
)

var bodyTemplate = template.Must(template.New("reminder").Parse(
	`<h2>{{.Title}}</h2>
<p><strong>Date:</strong> {{.When}}</p>
{{if .Content}}<div>{{.Content}}</div>
{{end}}{{if .Link}}<p><a href="{{.Link}}">View details</a></p>
{{end}}`))

type bodyData struct {
	Title   string
	When    string
	Content template.HTML
	Link    string
}

// MessageComposer renders reminder mails.
type MessageComposer struct {
	loc      *time.Location
	linkBase string
}

func NewMessageComposer(loc *time.Location, linkBase string) *MessageComposer {
	if loc == nil {
		loc = time.UTC
	}
	return &MessageComposer{loc: loc, linkBase: strings.TrimRight(linkBase, "/")}
}

// Compose builds the reminder for one occurrence of ev with the given label.
func (c *MessageComposer) Compose(ev *event.Event, occurrence reminder.Date, label string, now time.Time) (notify.Message, error) {
	data := bodyData{
		Title: ev.Title,
		When:  c.displayWhen(ev, occurrence),
		// Editor content is trusted HTML entered by operators.
		Content: template.HTML(ev.Content),
	}
	if c.linkBase != "" {
		data.Link = fmt.Sprintf("%s/%d", c.linkBase, ev.ID)
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return notify.Message{}, fmt.Errorf("failed to render reminder body for event %d: %w", ev.ID, err)
	}

	msg := notify.Message{
		Subject:  fmt.Sprintf("[Reminder] %s - %s", ev.Title, label),
		HTMLBody: body.String(),
	}
	ics, err := buildCalendar(ev, occurrence, c.loc, now)
	if err != nil {
		return notify.Message{}, err
	}
	msg.Attachments = append(msg.Attachments, notify.Attachment{
		Filename:    "event.ics",
		ContentType: "text/calendar; charset=utf-8; method=PUBLISH",
		Data:        ics,
	})
	return msg, nil
}

func (c *MessageComposer) displayWhen(ev *event.Event, occurrence reminder.Date) string {
	if !ev.IsRecurring {
		if start, hasClock, err := reminder.ParseStart(ev.StartDate); err == nil && hasClock {
			return start.Format(displayDateTimeLayout)
		}
	}
	return occurrence.In(c.loc).Format(displayDateLayout)
}

// RelativeDayLabel describes how far an occurrence is from today.
func RelativeDayLabel(days int) string {
	switch {
	case days == 1:
		return "1 day before the event"
	case days > 1:
		return fmt.Sprintf("%d days before the event", days)
	case days == 0:
		return "on the day of the event"
	case days == -1:
		return "1 day after the event"
	default:
		return fmt.Sprintf("%d days after the event", -days)
	}
}
