package translate

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// The message catalog ships embedded English defaults. Additional locales can
// be loaded into the bundle at startup without touching the pattern table.
var (
	bundle    = i18n.NewBundle(language.English)
	localizer = i18n.NewLocalizer(bundle, language.English.String())
)

// T localizes a message by id, falling back to the embedded default text.
func T(id, other string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID:    id,
			Other: other,
		},
	})
	if err != nil {
		return other
	}

	return msg
}
