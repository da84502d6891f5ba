// Package motd is a sample settings extension for a "message of the day"
// setting with two versions. v1 holds only the message; v2 adds the person
// the message is from. Migrating forward fills in a default person and
// migrating backward drops it.
package motd
