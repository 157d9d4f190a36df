// Package profilestore persists saved connection profiles in a local Badger
// key-value database.
//
// The store holds the durable shape of a connection (everything but the live
// session): it is read once at startup to populate the console's connection
// list and written on every create, edit, or delete. Live sessions are owned
// by the registry, never persisted here.
package profilestore
