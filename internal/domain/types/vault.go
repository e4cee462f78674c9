package types

// KDFParams are the Argon2id cost parameters a vault was sealed with.
type KDFParams struct {
	Time      uint32 `json:"time"`
	MemoryKiB uint32 `json:"memory_kib"`
	Threads   uint8  `json:"threads"`
}

// VaultRecord is the at-rest form of a key pair: both private keys sealed
// under a device-password-derived key, plus what is needed to re-derive it.
type VaultRecord struct {
	Version       int       `json:"v"`
	Identity      Identity  `json:"identity"`
	Salt          string    `json:"salt"`
	KDF           KDFParams `json:"kdf"`
	Verifier      string    `json:"verifier"`
	EncryptionKey string    `json:"encryption_key"`
	SigningKey    string    `json:"signing_key"`
}
