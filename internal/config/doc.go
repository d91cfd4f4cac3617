// Package config loads citadel's settings.
//
// Values come from three layers, later ones winning:
//
//  1. Built-in defaults
//  2. ~/.config/citadel/config.toml, or the path given with -config
//  3. CITADEL_* environment variables
//
// Durations are Go duration strings in both the file and the environment.
//
//	api_base        = "http://127.0.0.1:7488/api"
//	log_path        = "~/.local/state/citadel/citadel.log"
//	request_timeout = "10s"
//	search_debounce = "300ms"
//	retry_cooldown  = "3s"
package config
