// Package portal exposes the settings service on the D-Bus session bus
// as the org.freedesktop.impl.portal.Settings backend.
package portal

import (
	"fmt"

	"github.com/fdo-backends/portal-settings/settings"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	log "github.com/sirupsen/logrus"
)

const (
	// BusName is the well-known name desktop portal frontends resolve.
	BusName = "org.freedesktop.impl.portal.Settings"

	// ObjectPath is the standard desktop portal object path.
	ObjectPath = dbus.ObjectPath("/org/freedesktop/portal/desktop")

	// InterfaceName is the backend settings interface.
	InterfaceName = "org.freedesktop.impl.portal.Settings"

	interfaceVersion = uint32(1)
)

var errNotFound = dbus.NewError("org.freedesktop.portal.Error.NotFound", []interface{}{"Requested setting not found"})

// Portal serves Read and ReadAll over the bus and emits the
// SettingChanged signal. It registers itself on the settings change
// event, so every successful write is broadcast to the bus.
type Portal struct {
	conn    *dbus.Conn
	service *settings.Service
}

func New(conn *dbus.Conn, service *settings.Service) *Portal {
	return &Portal{conn: conn, service: service}
}

// Register exports the interface, introspection and properties at the
// portal object path and claims the well-known name.
func (p *Portal) Register() error {
	methods := map[string]interface{}{
		"Read":    p.Read,
		"ReadAll": p.ReadAll,
	}
	if err := p.conn.ExportMethodTable(methods, ObjectPath, InterfaceName); err != nil {
		return fmt.Errorf("error while exporting settings interface: %w", err)
	}

	if _, err := prop.Export(p.conn, ObjectPath, map[string]map[string]*prop.Prop{
		InterfaceName: {
			"version": {
				Value:    interfaceVersion,
				Writable: false,
				Emit:     prop.EmitFalse,
			},
		},
	}); err != nil {
		return fmt.Errorf("error while exporting properties: %w", err)
	}

	node := &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name: InterfaceName,
				Methods: []introspect.Method{
					{
						Name: "Read",
						Args: []introspect.Arg{
							{Name: "namespace", Type: "s", Direction: "in"},
							{Name: "key", Type: "s", Direction: "in"},
							{Name: "value", Type: "v", Direction: "out"},
						},
					},
					{
						Name: "ReadAll",
						Args: []introspect.Arg{
							{Name: "namespaces", Type: "as", Direction: "in"},
							{Name: "value", Type: "a{sa{sv}}", Direction: "out"},
						},
					},
				},
				Signals: []introspect.Signal{
					{
						Name: "SettingChanged",
						Args: []introspect.Arg{
							{Name: "namespace", Type: "s"},
							{Name: "key", Type: "s"},
							{Name: "value", Type: "v"},
						},
					},
				},
				Properties: []introspect.Property{
					{Name: "version", Type: "u", Access: "read"},
				},
			},
		},
	}
	if err := p.conn.Export(introspect.NewIntrospectable(node), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("error while exporting introspection data: %w", err)
	}

	reply, err := p.conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("error while requesting bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	settings.SettingChanged.Register(p)

	log.
		WithFields(log.Fields{"name": BusName, "path": ObjectPath}).
		Info("Settings portal registered on session bus")

	return nil
}

// Release gives up the well-known name. Safe to call during shutdown
// even if Register failed.
func (p *Portal) Release() {
	if _, err := p.conn.ReleaseName(BusName); err != nil {
		log.Warn(err)
	}
}

// Read handles the org.freedesktop.impl.portal.Settings.Read call.
func (p *Portal) Read(namespace, key string) (dbus.Variant, *dbus.Error) {
	v, ok := p.service.Read(namespace, key)
	if !ok {
		return dbus.Variant{}, errNotFound
	}
	return ToVariant(v), nil
}

// ReadAll handles the org.freedesktop.impl.portal.Settings.ReadAll call.
func (p *Portal) ReadAll(namespaces []string) (map[string]map[string]dbus.Variant, *dbus.Error) {
	all := p.service.ReadAll(namespaces)

	result := make(map[string]map[string]dbus.Variant, len(all))
	for ns, group := range all {
		converted := make(map[string]dbus.Variant, len(group))
		for key, v := range group {
			converted[key] = ToVariant(v)
		}
		result[ns] = converted
	}

	return result, nil
}

// Handle emits the SettingChanged signal for a successful write.
func (p *Portal) Handle(payload settings.SettingChangedPayload) {
	err := p.conn.Emit(
		ObjectPath,
		InterfaceName+".SettingChanged",
		payload.Namespace,
		payload.Key,
		ToVariant(payload.Value),
	)
	if err != nil {
		log.
			WithFields(log.Fields{"namespace": payload.Namespace, "key": payload.Key, "error": err}).
			Warn("Error while emitting SettingChanged signal")
	}
}
