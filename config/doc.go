// Package config loads twistkit client settings.
//
// Settings live under the "twist" key of a config.yml file and may be
// overridden by environment variables, optionally read from a .env file:
//
//	twist:
//	  base_url: https://api.twist.com/api
//	  timeout: 30s
//	  logging:
//	    level: debug
//
// TWIST_TOKEN sets twist.token, TWIST_BASE_URL sets twist.base_url, and so
// on for every nested key.
//
//	cfg, err := config.LoadClient("twist")
package config
