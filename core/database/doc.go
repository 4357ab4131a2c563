// Package database opens the database a generation model can be read from.
//
// It wraps GORM to configure MySQL or SQLite connections from the application
// configuration, and offers raw schema inspection (tables and columns) that
// core/model turns into a generation model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	tables, err := database.ListTables(db)
//	columns, err := database.GetTableColumns(db, "orders")
package database
