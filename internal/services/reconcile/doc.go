// Package reconcile keeps the local credential cache consistent with the
// remote store.
//
// Engine is Locked until Unlock hands it a key pair; it then owns the key
// pair, the cache and a Transport bound to the key pair's signing
// capability. Every mutation is confirmed remotely before the cache is
// touched and persisted, so a crash leaves the cache behind the remote store
// and a later Sync repairs it. Lookups are served from the cache alone.
//
// Operations on one Engine are serialised internally.
package reconcile
