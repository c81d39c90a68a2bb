package userconf

import (
	"errors"
	"sort"
	"sync"

	eng "github.com/reoring/userconf/internal/engine"
	jsonsrc "github.com/reoring/userconf/source/json"
)

// JSONDriver turns raw bytes into a token stream for the syntax stage. The
// default implementation is based on encoding/json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewBytes(b []byte) eng.TokenSource
	Name() string
}

// DriverEncodingJSON names the built-in encoding/json driver.
const DriverEncodingJSON = "encoding/json"

// ErrUnknownDriver is returned by DriverByName for unregistered names.
var ErrUnknownDriver = errors.New("userconf: unknown JSON driver")

type stdDriver struct{}

func (stdDriver) NewBytes(b []byte) eng.TokenSource { return jsonsrc.NewBytes(b) }
func (stdDriver) Name() string                      { return DriverEncodingJSON }

var builtinDrivers = map[string]JSONDriver{
	DriverEncodingJSON: stdDriver{},
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = stdDriver{}
)

// DriverByName returns a built-in driver.
func DriverByName(name string) (JSONDriver, error) {
	d, ok := builtinDrivers[name]
	if !ok {
		return nil, ErrUnknownDriver
	}
	return d, nil
}

// DriverNames lists the built-in driver names in sorted order.
func DriverNames() []string {
	names := make([]string, 0, len(builtinDrivers))
	for n := range builtinDrivers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = stdDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used when ParseOpt.Driver is nil.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}
