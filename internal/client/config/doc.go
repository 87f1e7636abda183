// Package config loads runtime configuration for the sweetshop CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and SWEETSHOP_* variables.
//  3. A JSON file selected with -c or -config.
//  4. Command-line flags -a, -d, -t and -l.
//
// The JSON file looks like:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "database_path": "sweetshop.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
