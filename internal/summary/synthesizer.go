package summary

import (
	"fmt"

	"github.com/selivandex/news-sentiment/pkg/models"
)

const noNewsTemplate = "No significant news found for %s. Sentiment is neutral."

var moodExplanations = map[models.Mood]string{
	models.MoodBullish: "Most news is positive. Investors feel optimistic.",
	models.MoodBearish: "Most news is negative. Investors feel worried.",
	models.MoodNeutral: "News is neutral.",
}

// Explain renders the digest sentence for the selected articles.
// With nothing selected it returns the fixed no-news message whatever the score.
func Explain(asset string, selected []models.Article, score int, mood models.Mood) string {
	if len(selected) == 0 {
		return fmt.Sprintf(noNewsTemplate, asset)
	}

	lead := selected[0]
	source := lead.Source
	if source == "" {
		source = lead.Provider
	}
	if source == "" {
		source = "an unnamed source"
	}

	return fmt.Sprintf("%s sentiment for %s (score %d/100), led by %s: %q. %s",
		mood, asset, score, source, lead.Title, moodExplanations[mood])
}
