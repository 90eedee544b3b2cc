package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/modules/etf"
)

// CatalogRefreshJob reloads the curated ETF catalog so category and
// search listings do not serve stale entries past their cache lifetime.
type CatalogRefreshJob struct {
	catalog *etf.Catalog
	log     zerolog.Logger
}

// NewCatalogRefreshJob creates a new catalog refresh job
func NewCatalogRefreshJob(catalog *etf.Catalog, log zerolog.Logger) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		catalog: catalog,
		log:     log.With().Str("job", "catalog_refresh").Logger(),
	}
}

// Name returns the job name
func (j *CatalogRefreshJob) Name() string {
	return "catalog_refresh"
}

// Run reloads the catalog
func (j *CatalogRefreshJob) Run() error {
	count := j.catalog.Refresh()
	j.log.Info().Int("entries", count).Msg("ETF catalog refreshed")
	return nil
}
