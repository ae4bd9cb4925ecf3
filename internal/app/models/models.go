// Package models holds the persisted records: user accounts created by roster imports
// and the per-batch upload summaries shown on department dashboards.
package models
