package config

import (
	"fmt"
	"sort"
	"strings"
)

// RegionConfig holds the endpoint base for a Zoho data center
type RegionConfig struct {
	Domain   string
	MailBase string
}

// Regions maps data-center domain suffixes to their endpoint configurations.
// The Zoho Mail API is served from mail.{domain}/api in every data center.
var Regions = map[string]RegionConfig{
	"zoho.com": {
		Domain:   "zoho.com",
		MailBase: "https://mail.zoho.com/api",
	},
	"zoho.eu": {
		Domain:   "zoho.eu",
		MailBase: "https://mail.zoho.eu/api",
	},
	"zoho.in": {
		Domain:   "zoho.in",
		MailBase: "https://mail.zoho.in/api",
	},
	"zoho.com.au": {
		Domain:   "zoho.com.au",
		MailBase: "https://mail.zoho.com.au/api",
	},
	"zoho.jp": {
		Domain:   "zoho.jp",
		MailBase: "https://mail.zoho.jp/api",
	},
}

// DefaultRegion is used when neither the config file nor the --region flag set one
const DefaultRegion = "zoho.com"

// GetRegion returns the configuration for the specified region domain
func GetRegion(name string) (RegionConfig, error) {
	cfg, ok := Regions[name]
	if !ok {
		return RegionConfig{}, fmt.Errorf("invalid region: %q (valid: %s)", name, strings.Join(ValidRegions(), ", "))
	}
	return cfg, nil
}

// ValidRegions returns a sorted list of valid region domains
func ValidRegions() []string {
	regions := make([]string, 0, len(Regions))
	for domain := range Regions {
		regions = append(regions, domain)
	}
	sort.Strings(regions)
	return regions
}
