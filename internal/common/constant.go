package common

// UserIDHeaderName carries the caller's pre-resolved user id on HTTP requests.
const UserIDHeaderName = "X-User-ID"

// DefaultBlockers is stored when a submission is made without blockers.
const DefaultBlockers = "No blockers"

// DefaultTimeZone is the ledger's day boundary zone unless configured otherwise.
const DefaultTimeZone = "Pacific/Auckland"
