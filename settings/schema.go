package settings

import "fmt"

// ValidationError is returned by Write when a value does not satisfy the
// rule for a known (namespace, key) pair. The store is left untouched.
type ValidationError struct {
	Namespace string
	Key       string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s/%s: %s", e.Namespace, e.Key, e.Reason)
}

// validate checks a value against the rule for its (namespace, key)
// pair. Pairs outside the schema accept any value so that clients can
// carry their own settings through the portal.
func validate(namespace, key string, v Value) error {
	reject := func(reason string) error {
		return &ValidationError{Namespace: namespace, Key: key, Reason: reason}
	}

	switch namespace {
	case NamespaceAppearance:
		switch key {
		case "color-scheme":
			if u, ok := v.Uint32(); !ok || u > 2 {
				return reject("color-scheme must be uint32 (0-2)")
			}
		case "accent-color":
			if _, ok := v.Color(); !ok {
				return reject("accent-color must be a (ddd) color triplet")
			}
		case "contrast":
			if u, ok := v.Uint32(); !ok || u > 1 {
				return reject("contrast must be uint32 (0-1)")
			}
		}
	case NamespaceInterface:
		switch key {
		case "gtk-theme", "icon-theme", "cursor-theme", "font-name", "monospace-font-name":
			if _, ok := v.String(); !ok {
				return reject(fmt.Sprintf("%s must be a string", key))
			}
		case "clock-format":
			// Only the type is checked. Desktops write values beyond
			// "12h"/"24h" here and rejecting them would break existing
			// clients.
			if _, ok := v.String(); !ok {
				return reject("clock-format must be '12h' or '24h'")
			}
		}
	case NamespacePrivacy:
		switch key {
		case "remember-recent-files":
			if _, ok := v.Bool(); !ok {
				return reject("remember-recent-files must be a boolean")
			}
		case "recent-files-max-age":
			if _, ok := v.Int32(); !ok {
				return reject("recent-files-max-age must be an int32")
			}
		}
	}

	return nil
}

// schemaKind reports the value kind the schema requires for a pair, or
// false for pairs outside the schema.
func schemaKind(namespace, key string) (Kind, bool) {
	switch namespace {
	case NamespaceAppearance:
		switch key {
		case "color-scheme", "contrast":
			return KindUint32, true
		case "accent-color":
			return KindColor, true
		}
	case NamespaceInterface:
		switch key {
		case "gtk-theme", "icon-theme", "cursor-theme", "font-name", "monospace-font-name", "clock-format":
			return KindString, true
		}
	case NamespacePrivacy:
		switch key {
		case "remember-recent-files":
			return KindBool, true
		case "recent-files-max-age":
			return KindInt32, true
		}
	}
	return KindRaw, false
}

// defaultSettings seeds the table with the documented defaults for every
// known pair. Entries are never deleted afterwards, only overwritten.
func defaultSettings() map[SettingKey]Value {
	return map[SettingKey]Value{
		{NamespaceAppearance, "color-scheme"}: Uint32(0), // 0: no preference, 1: dark, 2: light
		{NamespaceAppearance, "accent-color"}: ColorOf(Color{}),
		{NamespaceAppearance, "contrast"}:     Uint32(0), // 0: no preference, 1: high contrast

		{NamespaceInterface, "gtk-theme"}:           String("Adwaita"),
		{NamespaceInterface, "icon-theme"}:          String("Adwaita"),
		{NamespaceInterface, "cursor-theme"}:        String("Adwaita"),
		{NamespaceInterface, "font-name"}:           String("Cantarell 11"),
		{NamespaceInterface, "monospace-font-name"}: String("Source Code Pro 10"),
		{NamespaceInterface, "clock-format"}:        String("24h"),

		{NamespacePrivacy, "remember-recent-files"}: Bool(true),
		{NamespacePrivacy, "recent-files-max-age"}:  Int32(30), // days
	}
}
