/*
Package catalog provides the read-only place catalog.

A Catalog is built once from a source (the built-in data set, a YAML/JSON file or a
Loam document directory) and never changes afterwards. Records are validated at the
boundary: malformed entries are quarantined in a Report instead of being served.
*/
package catalog
