// Package issues persists triaged discrepancies so repeated scans only
// surface new ones. A reported issue is identified by its subject and tag
// alone; carrying payloads (scanned versions, page snapshots) exist for
// context and never affect deduplication.
package issues
