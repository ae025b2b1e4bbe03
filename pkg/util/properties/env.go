package properties

import (
	"os"
	"strings"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvKey converts a dotted key to the name of an environment variable, for
// instance, "ot.otel.exporter.jaeger.address" to
// "OT_OTEL_EXPORTER_JAEGER_ADDRESS".
func EnvKey(key string) string {
	return strings.ToUpper(envKeyReplacer.Replace(key))
}

type environ struct{}

// Environ returns a Properties that reads the environment variables. A key is
// looked up as it is first, and then by its EnvKey.
func Environ() Properties {
	return environ{}
}

func (environ) Lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	return os.LookupEnv(EnvKey(key))
}
