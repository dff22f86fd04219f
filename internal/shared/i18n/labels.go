// Package i18n renders display labels for ticket codes and notification
// subjects. Codes are stored untranslated; labels exist only at the edges.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.Italian, language.English}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.Italian: {
		"status.NEW":    "Nuovo",
		"status.INP":    "In lavorazione",
		"status.WAI":    "In attesa utente",
		"status.RES":    "Risolto",
		"status.CLO":    "Chiuso",
		"priority.LOW":  "Bassa",
		"priority.MED":  "Media",
		"priority.HIGH": "Alta",
		"priority.BLK":  "Bloccante",
		"impact.ONE":    "Utente singolo",
		"impact.TEAM":   "Team",
		"impact.DEPT":   "Reparto",
		"impact.SITE":   "Sito",
		"urgency.LOW":   "Bassa",
		"urgency.MED":   "Media",
		"urgency.HIGH":  "Alta",
		"source.WEB":    "Portale",
		"source.EML":    "Email importata",
		"source.TEL":    "Telefono",

		"subject.ticket_created":    "[%s] Nuovo ticket: %s",
		"subject.status_changed":    "[%s] Stato aggiornato: %s",
		"subject.comment_added":     "[%s] Nuovo commento",
		"subject.attachments_added": "[%s] Nuovi allegati",
		"subject.ticket_assigned":   "[%s] Ticket assegnato",

		"field.protocol":   "Protocollo",
		"field.title":      "Titolo",
		"field.department": "Reparto",
		"field.status":     "Stato",
		"field.priority":   "Priorità",
		"field.change":     "Variazione",
		"field.actor":      "Eseguito da",
		"field.assignee":   "Assegnatario",
		"field.files":      "File",
		"field.link":       "Apri il ticket",
	},
	language.English: {
		"status.NEW":    "New",
		"status.INP":    "In progress",
		"status.WAI":    "Waiting for user",
		"status.RES":    "Resolved",
		"status.CLO":    "Closed",
		"priority.LOW":  "Low",
		"priority.MED":  "Medium",
		"priority.HIGH": "High",
		"priority.BLK":  "Blocking",
		"impact.ONE":    "Single user",
		"impact.TEAM":   "Team",
		"impact.DEPT":   "Department",
		"impact.SITE":   "Site",
		"urgency.LOW":   "Low",
		"urgency.MED":   "Medium",
		"urgency.HIGH":  "High",
		"source.WEB":    "Portal",
		"source.EML":    "Imported email",
		"source.TEL":    "Phone",

		"subject.ticket_created":    "[%s] New ticket: %s",
		"subject.status_changed":    "[%s] Status updated: %s",
		"subject.comment_added":     "[%s] New comment",
		"subject.attachments_added": "[%s] New attachments",
		"subject.ticket_assigned":   "[%s] Ticket assigned",

		"field.protocol":   "Protocol",
		"field.title":      "Title",
		"field.department": "Department",
		"field.status":     "Status",
		"field.priority":   "Priority",
		"field.change":     "Change",
		"field.actor":      "Changed by",
		"field.assignee":   "Assignee",
		"field.files":      "Files",
		"field.link":       "Open the ticket",
	},
}

var labels = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Italian))
	for tag, entries := range translations {
		for key, msg := range entries {
			// SetString only fails on malformed tags, which are constants here.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Translator renders labels in one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// NewTranslator picks the closest supported locale; unknown locales fall
// back to Italian.
func NewTranslator(locale string) *Translator {
	_, idx, _ := matcher.Match(language.Make(locale))
	tag := supported[idx]
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(labels)),
	}
}

func (t *Translator) Locale() string {
	return t.tag.String()
}

// Label returns the display value for a code in a kind, such as
// Label("status", "INP"). Unknown codes are returned as-is.
func (t *Translator) Label(kind, code string) string {
	key := kind + "." + code
	if _, ok := translations[t.tag][key]; !ok {
		return code
	}
	return t.printer.Sprintf(key)
}

// Sprintf formats a catalog message.
func (t *Translator) Sprintf(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
