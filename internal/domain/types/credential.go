package types

import "sort"

// Credential is one stored secret. Username and Password hold ciphertext
// whenever the record is at rest or in transit.
type Credential struct {
	ID       CredentialID `json:"_id" bson:"_id"`
	OwnerID  Identity     `json:"user_id" bson:"user_id"`
	Site     string       `json:"site" bson:"site"`
	Username string       `json:"username" bson:"username"`
	Password string       `json:"password" bson:"password"`
}

// CredentialsCache maps site to the credentials stored for that site, keyed
// by credential id.
type CredentialsCache map[string]map[CredentialID]Credential

// NewCredentialsCache groups creds by site.
func NewCredentialsCache(creds []Credential) CredentialsCache {
	c := make(CredentialsCache)
	for _, cred := range creds {
		c.Put(cred)
	}
	return c
}

// Lookup returns the credential stored under site and id.
func (c CredentialsCache) Lookup(site string, id CredentialID) (Credential, bool) {
	cred, ok := c[site][id]
	return cred, ok
}

// Put inserts or replaces cred under its site and id.
func (c CredentialsCache) Put(cred Credential) {
	bySite, ok := c[cred.Site]
	if !ok {
		bySite = make(map[CredentialID]Credential)
		c[cred.Site] = bySite
	}
	bySite[cred.ID] = cred
}

// Remove deletes the credential under site and id. Empty sites are dropped.
func (c CredentialsCache) Remove(site string, id CredentialID) {
	bySite, ok := c[site]
	if !ok {
		return
	}
	delete(bySite, id)
	if len(bySite) == 0 {
		delete(c, site)
	}
}

// Len returns the number of credentials across all sites.
func (c CredentialsCache) Len() int {
	n := 0
	for _, bySite := range c {
		n += len(bySite)
	}
	return n
}

// Sites returns the cached site names in sorted order.
func (c CredentialsCache) Sites() []string {
	out := make([]string, 0, len(c))
	for site := range c {
		out = append(out, site)
	}
	sort.Strings(out)
	return out
}
