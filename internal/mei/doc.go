// Package mei holds the dashboard rules for a MEI ledger: the DAS due-date
// countdown, month aggregates, trailing history, the current-month DAS
// resolver and the ledger views. Everything here works on already fetched
// slices and never performs I/O.
package mei
