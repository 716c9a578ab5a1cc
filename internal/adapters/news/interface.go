package news

import (
	"context"
	"fmt"

	"github.com/selivandex/news-sentiment/pkg/models"
)

// Adapter fetches news for a query from one provider and normalizes it
// into canonical articles. Fields the provider does not have stay unset.
type Adapter interface {
	// Name returns provider name
	Name() string

	// Supports reports whether the provider can serve the asset class
	Supports(class models.AssetClass) bool

	// Fetch performs the outbound call(s) and maps records field by field
	Fetch(ctx context.Context, q models.Query) ([]models.Article, error)
}

// Outcome is the settled result of one adapter call
type Outcome struct {
	Err      error
	Adapter  string
	Articles []models.Article
}

// Fulfilled reports whether the adapter produced data
func (o Outcome) Fulfilled() bool {
	return o.Err == nil
}

// Run calls the adapter and converts every result, including a panic,
// into an Outcome. Nothing escapes to the caller.
func Run(ctx context.Context, a Adapter, q models.Query) (out Outcome) {
	out.Adapter = a.Name()

	defer func() {
		if r := recover(); r != nil {
			out.Articles = nil
			out.Err = fmt.Errorf("%s: adapter panic: %v", out.Adapter, r)
		}
	}()

	articles, err := a.Fetch(ctx, q)
	if err != nil {
		out.Err = err
		return out
	}

	out.Articles = articles
	return out
}
