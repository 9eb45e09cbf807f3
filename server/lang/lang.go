// Package lang holds the translations of messages shown to users.
package lang

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Keys of the messages that may be translated. The keys double as the error
// codes sent to users.
const (
	CandelabraEmpty    = "candelabraempty"
	CandelabraFull     = "candelabrafull"
	NeedCandlesToLight = "needcandlestolight"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		CandelabraEmpty:    "The candelabra holds no candles",
		CandelabraFull:     "Candelabra is full",
		NeedCandlesToLight: "Add a candle before lighting the candelabra",
	},
	language.German: {
		CandelabraEmpty:    "Der Kerzenleuchter hält keine Kerzen",
		CandelabraFull:     "Der Kerzenleuchter ist voll",
		NeedCandlesToLight: "Stecke zuerst eine Kerze in den Kerzenleuchter",
	},
}

// Translator translates message keys into the language of a user. Keys
// without a translation in a language fall back to English. A Translator is
// safe for concurrent use.
type Translator struct {
	cat *catalog.Builder
}

// New creates a Translator holding all built-in translations.
func New() *Translator {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, messages := range translations {
		for key, msg := range messages {
			// The catalog only fails for malformed messages, which the
			// built-in translations are not.
			_ = cat.SetString(tag, key, msg)
		}
	}
	return &Translator{cat: cat}
}

// Translate returns the message stored under key in the language passed. The
// key itself is returned if no translation exists in any language. A nil
// *Translator always returns the key.
func (t *Translator) Translate(tag language.Tag, key string) string {
	if t == nil {
		return key
	}
	return message.NewPrinter(tag, message.Catalog(t.cat)).Sprintf(key)
}

// Languages returns the languages that messages are translated into.
func (t *Translator) Languages() []language.Tag {
	if t == nil {
		return nil
	}
	return t.cat.Languages()
}
