package domain

// WriteOutcome reports where a write landed.
// A write that reached the local cache but not the remote store is a partial
// success: the caller sees the local value and Err explains what was missed.
type WriteOutcome struct {
	Err               error
	CommittedLocally  bool // written to the durable local cache
	CommittedRemotely bool // acknowledged by the remote store
}

// Partial returns true if the write was applied somewhere but not everywhere
// it was attempted.
func (o WriteOutcome) Partial() bool {
	return o.Err != nil && (o.CommittedLocally || o.CommittedRemotely)
}
