// Package config loads the application configuration.
//
// Values come from, in increasing priority: the `default` struct tags of the
// partial configurations, a `.env` file in the working directory, and environment
// variables. Nested keys map to upper-case, underscore separated variables:
//
//	generator.target_dir      GENERATOR_TARGET_DIR
//	generator.template_roots  GENERATOR_TEMPLATE_ROOTS (comma separated)
//	storage.endpoint          STORAGE_ENDPOINT
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
package config
