// Manual test client. Connects to the session bus and walks every
// documented setting through the portal interface, verifying presence
// and wire types.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fdo-backends/portal-settings/portal"
	"github.com/fdo-backends/portal-settings/settings"
	"github.com/godbus/dbus/v5"
	"github.com/jpillora/backoff"
)

const connectAttempts = 10

func main() {
	fmt.Println("Portal settings client - testing all settings")
	fmt.Println()

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	obj := conn.Object(portal.BusName, portal.ObjectPath)

	// The service may still be starting; retry with backoff until it
	// answers.
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var all map[string]map[string]dbus.Variant
	for {
		err = call(obj, "ReadAll", []string{}).Store(&all)
		if err == nil {
			break
		}
		if int(b.Attempt()) >= connectAttempts {
			log.Fatalf("service did not answer after %d attempts: %s", connectAttempts, err)
		}
		time.Sleep(b.Duration())
	}

	fmt.Printf("Connected to %s\n", portal.BusName)

	failures := 0
	fail := func(format string, args ...interface{}) {
		failures++
		fmt.Printf("  FAIL: "+format+"\n", args...)
	}

	// Unfiltered ReadAll
	fmt.Println("[1] ReadAll with no filter:")
	total := 0
	for ns, keys := range all {
		fmt.Printf("  %s: %d keys\n", ns, len(keys))
		total += len(keys)
	}
	if len(all) < 3 {
		fail("expected at least 3 namespaces, got %d", len(all))
	}
	if total < 11 {
		fail("expected at least 11 settings, got %d", total)
	}

	// Filtered ReadAll
	fmt.Println("[2] ReadAll filtered to org.freedesktop.appearance:")
	var filtered map[string]map[string]dbus.Variant
	if err := call(obj, "ReadAll", []string{settings.NamespaceAppearance}).Store(&filtered); err != nil {
		log.Fatal(err)
	}
	if len(filtered) != 1 {
		fail("expected exactly 1 namespace, got %d", len(filtered))
	}
	if len(filtered[settings.NamespaceAppearance]) != 3 {
		fail("expected 3 appearance keys, got %d", len(filtered[settings.NamespaceAppearance]))
	}

	// Per-key reads with type verification
	fmt.Println("[3] Reading individual settings:")
	checks := []struct {
		namespace string
		key       string
		kind      settings.Kind
	}{
		{settings.NamespaceAppearance, "color-scheme", settings.KindUint32},
		{settings.NamespaceAppearance, "accent-color", settings.KindColor},
		{settings.NamespaceAppearance, "contrast", settings.KindUint32},
		{settings.NamespaceInterface, "gtk-theme", settings.KindString},
		{settings.NamespaceInterface, "icon-theme", settings.KindString},
		{settings.NamespaceInterface, "cursor-theme", settings.KindString},
		{settings.NamespaceInterface, "font-name", settings.KindString},
		{settings.NamespaceInterface, "monospace-font-name", settings.KindString},
		{settings.NamespaceInterface, "clock-format", settings.KindString},
		{settings.NamespacePrivacy, "remember-recent-files", settings.KindBool},
		{settings.NamespacePrivacy, "recent-files-max-age", settings.KindInt32},
	}

	for _, c := range checks {
		var variant dbus.Variant
		if err := call(obj, "Read", c.namespace, c.key).Store(&variant); err != nil {
			fail("%s/%s: %s", c.namespace, c.key, err)
			continue
		}
		value := portal.FromVariant(variant)
		if value.Kind() != c.kind {
			fail("%s/%s: expected %s, got %s (%s)", c.namespace, c.key, c.kind, value.Kind(), variant.Signature())
			continue
		}
		fmt.Printf("  ok %s/%s: %s\n", c.namespace, c.key, variant.String())
	}

	// Unknown key should answer with a not found error, not a crash
	fmt.Println("[4] Reading an unknown setting:")
	var variant dbus.Variant
	if err := call(obj, "Read", "com.example.unknown", "nothing").Store(&variant); err == nil {
		fail("expected an error for an unknown setting")
	} else {
		fmt.Printf("  ok: %s\n", err)
	}

	fmt.Println()
	if failures > 0 {
		fmt.Printf("%d checks FAILED\n", failures)
		os.Exit(1)
	}
	fmt.Printf("All checks passed (%d settings verified)\n", len(checks))
}

func call(obj dbus.BusObject, method string, args ...interface{}) *dbus.Call {
	return obj.Call(portal.InterfaceName+"."+method, 0, args...)
}
