package monitor

import (
	"github.com/godbus/dbus/v5"
)

// DBusClient defines the interface for D-Bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/ledboard/internal/monitor DBusClient
type DBusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// Call invokes a method and returns the reply body
	// dest: The bus name (e.g., "org.freedesktop.ScreenSaver")
	// path: The object path (e.g., "/org/freedesktop/ScreenSaver")
	// method: The fully qualified method (e.g., "org.freedesktop.ScreenSaver.Inhibit")
	Call(dest, path, method string, args ...interface{}) ([]interface{}, error)

	// SetProperty writes a property on a D-Bus object
	// prop: The fully qualified property (e.g., "org.gnome.Mutter.DisplayConfig.PowerSaveMode")
	SetProperty(dest, path, prop string, value interface{}) error
}

// StdDBusClient is the real implementation using godbus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient creates a real D-Bus client connected to the session bus
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

// Call invokes a method and returns the reply body
func (c *StdDBusClient) Call(dest, path, method string, args ...interface{}) ([]interface{}, error) {
	call := c.conn.Object(dest, dbus.ObjectPath(path)).Call(method, 0, args...)
	return call.Body, call.Err
}

// SetProperty writes a property on a D-Bus object
func (c *StdDBusClient) SetProperty(dest, path, prop string, value interface{}) error {
	return c.conn.Object(dest, dbus.ObjectPath(path)).SetProperty(prop, dbus.MakeVariant(value))
}
