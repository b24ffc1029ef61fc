package redisx

import "time"

const (
	// Cart per session: cart:{session_id} -> JSON {slug: quantity}
	KeyCart = "cart:%s"

	// Submission lock per session: checkout:lock:{session_id} -> 1
	KeySubmitLock = "checkout:lock:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Carts in the fast tier expire after an hour of inactivity.
	TTLCart = time.Hour

	// The lock bounds one submission; expiry frees a session whose worker died.
	TTLSubmitLock = time.Minute

	TTLDedup = 48 * time.Hour
)
