package extract

import (
	"context"

	"github.com/jonathan/profile-miner/internal/fetch"
	"github.com/jonathan/profile-miner/internal/types"
)

// Fetcher resolves profile URLs into records using a two-stage fallback:
// structured-data scraping first, then the paid lookup API when the scrape
// produced nothing or a record without a company.
type Fetcher struct {
	fetchOpts  *fetch.Options
	proxycurl  *ProxycurlClient
	useBrowser bool
	verbose    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithProxycurl enables the paid-API fallback stage.
func WithProxycurl(client *ProxycurlClient) Option {
	return func(f *Fetcher) { f.proxycurl = client }
}

// WithBrowser enables headless-browser rendering when a plain fetch yields
// no structured-data block.
func WithBrowser(verbose bool) Option {
	return func(f *Fetcher) {
		f.useBrowser = true
		f.verbose = verbose
	}
}

// WithFetchOptions overrides the page fetch options.
func WithFetchOptions(opts *fetch.Options) Option {
	return func(f *Fetcher) { f.fetchOpts = opts }
}

// NewFetcher creates a Fetcher with scraping always enabled and optional
// fallback stages.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{fetchOpts: fetch.DefaultOptions()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves one URL. It returns nil when neither stage produced a
// record; a non-nil record may still be insufficient (missing name or
// company), a judgement that belongs to the caller.
func (f *Fetcher) Fetch(ctx context.Context, profileURL string) *types.ProfileRecord {
	record := f.scrape(ctx, profileURL)

	if (record == nil || record.Company == "") && f.proxycurl != nil {
		record = f.proxycurl.Lookup(ctx, profileURL)
	}

	return record
}
