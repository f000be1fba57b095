// Package config provides configuration parsing for rdom tools.
//
// The configuration is stored in rdom.yaml next to the tree documents a
// tool operates on, or passed explicitly with --config. This package handles
// loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	scheduler:
//	  recursionLimit: 100
//	server:
//	  addr: ":8080"
//	  rateLimit: 20
//	  burst: 40
//	metrics:
//	  namespace: rdom
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	logger := cfg.Logger(os.Stderr)
//
// A missing file is an error from Load; callers that accept defaults check
// Exists first or use New.
package config
