// Package fetch is the throttled, disk-caching HTTP client used for all
// site scraping. Every fetched page lands in a flat cache directory so
// repeated runs (and the download command) never re-hit the sites.
package fetch
