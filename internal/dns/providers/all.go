// Package providers imports all DNS provider packages to trigger their init() registration.
package providers

import (
	_ "github.com/Waynenet/whois-sync/internal/dns/dryrun"
	_ "github.com/Waynenet/whois-sync/internal/dns/registrar"
)
