package discord

import (
	"fmt"

	"github.com/emoji-timer/emojitimer-go/pkg/glyph"
)

// EmojiLoader returns a glyph.LoadFunc that reads the custom emojis of the
// guild storing the timer glyphs.
func EmojiLoader(session sessionAPI, guildID string) glyph.LoadFunc {
	return func() (map[string]glyph.Symbol, error) {
		if guildID == "" {
			return nil, fmt.Errorf("emoji guild id is not configured")
		}

		emojis, err := session.GuildEmojis(guildID)
		if err != nil {
			return nil, fmt.Errorf("loading emojis of guild %s: %w", guildID, err)
		}

		symbols := make(map[string]glyph.Symbol, len(emojis))
		for _, e := range emojis {
			if e == nil || e.Name == "" || e.ID == "" {
				continue
			}
			if _, dup := symbols[e.Name]; dup {
				// First emoji with a name wins, as in the platform's own lookup
				continue
			}
			symbols[e.Name] = glyph.Symbol(e.MessageFormat())
		}
		return symbols, nil
	}
}
