package timeago

import (
	"context"
	"time"

	"golang.org/x/text/language"

	"github.com/zjrosen/reltime/internal/cachemanager"
	"github.com/zjrosen/reltime/internal/locale"
)

type formatterKey string

type formatterInput struct {
	tag  language.Tag
	opts locale.FormatOptions
}

// FormatterCache memoizes locale formatters by locale and format options.
type FormatterCache struct {
	store *cachemanager.InMemoryCacheManager[formatterKey, *locale.RelativeFormatter]
	rt    *cachemanager.ReadThroughCache[formatterKey, *locale.RelativeFormatter, formatterInput]
	ttl   time.Duration
}

// NewFormatterCache creates an empty cache whose entries expire after ttl
// without use.
func NewFormatterCache(ttl time.Duration) *FormatterCache {
	store := cachemanager.NewInMemoryCacheManager[formatterKey, *locale.RelativeFormatter](
		"formatters", ttl, cachemanager.DefaultCleanupInterval)
	return &FormatterCache{
		store: store,
		rt:    cachemanager.NewReadThroughCache(store, buildFormatter, false),
		ttl:   ttl,
	}
}

var defaultFormatters = NewFormatterCache(cachemanager.DefaultExpiration)

func buildFormatter(_ context.Context, in formatterInput) (*locale.RelativeFormatter, error) {
	return locale.NewRelativeFormatter(in.tag, in.opts), nil
}

// Get returns the formatter for tag and opts, building it on first use.
func (c *FormatterCache) Get(ctx context.Context, tag language.Tag, opts locale.FormatOptions) *locale.RelativeFormatter {
	// Normalized so "" and the explicit default share an entry.
	tag, opts = locale.Normalize(tag, opts)
	key := formatterKey(tag.String() + "|" + string(opts.Style) + "|" + string(opts.Numeric))

	f, err := c.rt.GetWithRefresh(ctx, key, formatterInput{tag: tag, opts: opts}, c.ttl)
	if err != nil || f == nil {
		return locale.NewRelativeFormatter(tag, opts)
	}
	return f
}

// Len returns the number of cached formatters.
func (c *FormatterCache) Len() int {
	return c.store.Len()
}

// FormatterFor returns a shared formatter from the process-wide cache.
func FormatterFor(ctx context.Context, tag language.Tag, opts locale.FormatOptions) *locale.RelativeFormatter {
	return defaultFormatters.Get(ctx, tag, opts)
}
