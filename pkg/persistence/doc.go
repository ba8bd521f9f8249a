// Package persistence stores built projects on disk.
//
// A project is written in JSON (the default), CBOR or YAML. JSON and YAML are
// decoded through project.Deserialize; CBOR decodes the model directly. In
// every format a loaded project has normalized addresses, no matter which
// tool wrote the file.
package persistence
