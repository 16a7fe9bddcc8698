// Package lookup resolves catalog codes to publication names.
//
// Tables are loaded from CSV (name, code), parquet (name and code columns)
// or YAML (a code: name mapping or a list of {name, code} rows).
package lookup
