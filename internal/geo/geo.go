// Package geo resolves client IPs to coarse geography for analytics events.
package geo

import (
	"log"
	"net"

	"bunchly/internal/observability"

	"github.com/oschwald/geoip2-golang"
)

// Unknown is the degraded value used when a lookup fails for any reason.
// Geo resolution is best-effort: a failed lookup never fails the request.
const Unknown = "Unknown"

// Resolver maps an IP address to a country and city.
type Resolver interface {
	Lookup(ip string) (country, city string)
	Close() error
}

type maxmindResolver struct {
	db *geoip2.Reader
}

// NewResolver opens a MaxMind GeoIP2/GeoLite2 city database. An empty path or
// an unreadable database returns a resolver that always degrades to Unknown;
// geo resolution never blocks server boot.
func NewResolver(dbPath string) Resolver {
	if dbPath == "" {
		return &maxmindResolver{}
	}
	db, err := geoip2.Open(dbPath)
	if err != nil {
		log.Printf("GeoIP warning: cannot open database %q: %v (continuing without geo resolution)", dbPath, err)
		return &maxmindResolver{}
	}
	return &maxmindResolver{db: db}
}

func (r *maxmindResolver) Lookup(ip string) (string, string) {
	if r.db == nil {
		return Unknown, Unknown
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		observability.GeoLookupFailures.Inc()
		return Unknown, Unknown
	}

	record, err := r.db.City(parsed)
	if err != nil {
		observability.GeoLookupFailures.Inc()
		return Unknown, Unknown
	}

	country := record.Country.Names["en"]
	if country == "" {
		country = Unknown
	}
	city := record.City.Names["en"]
	if city == "" {
		city = Unknown
	}
	return country, city
}

func (r *maxmindResolver) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
