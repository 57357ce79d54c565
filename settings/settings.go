// Package settings implements the schema-validated settings table
// backing the org.freedesktop.impl.portal.Settings interface.
package settings

import "fmt"

// Namespaces with a seeded schema.
const (
	NamespaceAppearance = "org.freedesktop.appearance"
	NamespaceInterface  = "org.gnome.desktop.interface"
	NamespacePrivacy    = "org.gnome.desktop.privacy"
)

// SettingKey identifies one setting. It is used as a lookup key and is
// never mutated after construction.
type SettingKey struct {
	Namespace string
	Key       string
}

func (k SettingKey) String() string {
	return fmt.Sprintf("%s/%s", k.Namespace, k.Key)
}
