package config

import (
	"encoding/json"
	"os"

	"github.com/cloudshare/cloudshare-cli/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config only when present, so the JSON file can
// override a subset of fields.
type JsonConfig struct {
	APIBaseURL   *string `json:"api_base_url"`
	ShareOrigin  *string `json:"share_origin"`
	GatewayKeyID *string `json:"gateway_key_id"`
	Currency     *string `json:"currency"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors; a broken config file should stop the
// program before any session starts.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.ShareOrigin != nil {
		cfg.ShareOrigin = *jc.ShareOrigin
	}
	if jc.GatewayKeyID != nil {
		cfg.GatewayKeyID = *jc.GatewayKeyID
	}
	if jc.Currency != nil {
		cfg.Currency = *jc.Currency
	}
}
