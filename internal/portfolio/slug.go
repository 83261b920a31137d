package portfolio

import (
	"context"
	"fmt"

	"portfoliohub/pkg/utils"
)

// uniqueSlug appends -2, -3, ... until the slug is free. The portfolio's
// own existing slug never counts as a collision.
func (r *Repo) uniqueSlug(ctx context.Context, title string, portfolioID int64) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = fmt.Sprintf("portfolio-%d", portfolioID)
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := r.SlugTaken(ctx, slug, portfolioID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
