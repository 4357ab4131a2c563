// Package model loads the data a generation run is driven by.
//
// A model is a plain map[string]any. It can come from a YAML or JSON file
// (LoadFile) or from a database schema (FromDatabase), which produces
//
//	tables:
//	  - name: orders
//	    columns:
//	      - {name: id, type: int(11), nullable: false, key: PRI, primaryKey: true}
//
// Actors, the discriminators artifacts can be partitioned by, are read from the
// optional top-level "actors" list.
package model
