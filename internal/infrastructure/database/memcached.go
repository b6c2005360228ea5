package database

import (
	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached creates the client caching document bodies.
func NewMemcached(server string) *memcache.Client {
	return memcache.New(server)
}
