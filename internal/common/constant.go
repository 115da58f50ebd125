package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultRecentEntriesLimit is used when a caller asks for recent entries
// without a positive limit.
const DefaultRecentEntriesLimit = 10

// MaxRecentEntriesLimit caps a single recent-entries page.
const MaxRecentEntriesLimit = 100
