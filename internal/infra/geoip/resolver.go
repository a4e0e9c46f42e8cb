package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Region is the coarse location of a client: ISO 3166-1 country and the
// ISO 3166-2 subdivision suffix (for example "IN" and "TG").
type Region struct {
	Country     string
	Subdivision string
}

// RegionResolver resolves regions from IP addresses.
type RegionResolver interface {
	Region(ip string) (Region, error)
}

// Resolver provides lookups backed by a MaxMind GeoIP2/GeoLite2 City database.
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP database at the given path. When the path is
// empty, nil is returned and callers skip IP based hints.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// Region returns the country and first-level subdivision for the provided IP.
func (r *Resolver) Region(ip string) (Region, error) {
	if r == nil || r.reader == nil {
		return Region{}, ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Region{}, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return Region{}, fmt.Errorf("geoip: lookup city: %w", err)
	}
	if record == nil {
		return Region{}, nil
	}
	region := Region{Country: strings.ToUpper(record.Country.IsoCode)}
	if len(record.Subdivisions) > 0 {
		region.Subdivision = strings.ToUpper(record.Subdivisions[0].IsoCode)
	}
	return region, nil
}

// Close closes the underlying database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
