package geoip

import (
	"errors"
	"net"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockCityReader struct {
	mock.Mock
}

func (m *MockCityReader) City(ip net.IP) (*geoip2.City, error) {
	args := m.Called(ip.String())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geoip2.City), args.Error(1)
}

func (m *MockCityReader) Close() error {
	return m.Called().Error(0)
}

func TestLocator_Locate(t *testing.T) {
	reader := &MockCityReader{}
	berlin := &geoip2.City{}
	berlin.Location.Latitude = 52.52
	berlin.Location.Longitude = 13.40
	reader.On("City", "81.2.69.160").Return(berlin, nil)
	reader.On("City", "81.2.69.161").Return(nil, errors.New("corrupt record"))
	reader.On("City", "81.2.69.162").Return(&geoip2.City{}, nil)

	l := newLocator(reader, zap.NewNop())

	lat, lon, ok := l.Locate("81.2.69.160")
	assert.True(t, ok)
	assert.Equal(t, 52.52, lat)
	assert.Equal(t, 13.40, lon)

	_, _, ok = l.Locate("81.2.69.161")
	assert.False(t, ok)

	_, _, ok = l.Locate("81.2.69.162")
	assert.False(t, ok, "zero location means unknown")

	for _, ip := range []string{"", "not-an-ip", "10.0.0.1", "127.0.0.1", "0.0.0.0"} {
		_, _, ok = l.Locate(ip)
		assert.False(t, ok, ip)
	}

	reader.AssertNumberOfCalls(t, "City", 3)
}

func TestOpen_EmptyPath(t *testing.T) {
	l, err := Open("", zap.NewNop())
	assert.NoError(t, err)
	assert.Nil(t, l)

	_, _, ok := l.Locate("81.2.69.160")
	assert.False(t, ok)
	assert.NoError(t, l.Close())
}
