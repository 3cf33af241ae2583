// Package geoip resolves client IP addresses to approximate coordinates
// using a MaxMind GeoIP2/GeoLite2 City database.
package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain/repository"
)

// cityReader - часть geoip2.Reader, нужная локатору
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

type Locator struct {
	reader cityReader
	logger *zap.Logger
}

var _ repository.IPLocator = (*Locator)(nil)

// Open открывает базу City. Пустой путь - локатор не настроен (nil, nil).
func Open(path string, logger *zap.Logger) (*Locator, error) {
	if path == "" {
		return nil, nil
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %q: %w", path, err)
	}

	logger.Info("GeoIP database opened",
		zap.String("path", path),
		zap.String("type", reader.Metadata().DatabaseType))

	return &Locator{reader: reader, logger: logger}, nil
}

func newLocator(reader cityReader, logger *zap.Logger) *Locator {
	return &Locator{reader: reader, logger: logger}
}

// Locate возвращает координаты города для IP. Частные и нераспознанные адреса - ok=false.
func (l *Locator) Locate(ip string) (float64, float64, bool) {
	if l == nil {
		return 0, 0, false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsUnspecified() {
		return 0, 0, false
	}

	record, err := l.reader.City(parsed)
	if err != nil {
		l.logger.Warn("GeoIP lookup failed", zap.String("ip", ip), zap.Error(err))
		return 0, 0, false
	}

	loc := record.Location
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return 0, 0, false
	}
	return loc.Latitude, loc.Longitude, true
}

func (l *Locator) Close() error {
	if l == nil {
		return nil
	}
	return l.reader.Close()
}
