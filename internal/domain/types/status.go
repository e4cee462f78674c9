package types

// SyncResult reports how a sync ended. Offline is set when the remote store
// could not be reached and the local cache was kept; Warning carries why.
type SyncResult struct {
	Count   int
	Offline bool
	Warning error
}

// Status describes the local account on this device.
type Status struct {
	HasVault bool
	Unlocked bool
	Identity Identity
}
