package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kakao/otbridge/pkg/util/properties"
)

const (
	CategoryProperties = "Properties:"
)

var (
	// Property is a flag setting a property in the form of key=value. It can
	// be repeated.
	Property = &cli.StringSliceFlag{
		Name:     "property",
		Category: CategoryProperties,
		Aliases:  []string{"D"},
		Usage:    "Set a property in the form of key=value, for instance, -D ot.otel.exporter=logging. Repeat the flag to set more than one.",
		Action: func(_ *cli.Context, values []string) error {
			if _, err := properties.ParseAssignments(values); err != nil {
				return fmt.Errorf("invalid value for flag --property: %w", err)
			}
			return nil
		},
	}
	// PropertiesFile is a flag specifying a YAML file of properties.
	PropertiesFile = &cli.StringFlag{
		Name:     "properties-file",
		Category: CategoryProperties,
		Aliases:  []string{"properties"},
		EnvVars:  []string{"OTBRIDGE_PROPERTIES_FILE"},
		Usage:    "YAML file of properties. Nested mappings are joined with dots.",
		Action: func(_ *cli.Context, value string) error {
			if _, err := properties.ReadFile(value); err != nil {
				return fmt.Errorf("invalid value \"%s\" for flag --properties-file: %w", value, err)
			}
			return nil
		},
	}
)

// PropertiesFlags returns all flags of properties sources.
func PropertiesFlags() []cli.Flag {
	return []cli.Flag{
		Property,
		PropertiesFile,
	}
}

// ParsePropertiesFlags returns the properties of the command. The sources are
// looked up in the following order, and the first hit wins:
//
//  1. tracer flags, for instance, --exporter
//  2. --property
//  3. --properties-file
//  4. environment variables
func ParsePropertiesFlags(c *cli.Context) (properties.Properties, error) {
	chain := properties.Chain{ParseTracerFlags(c)}

	assignments, err := properties.ParseAssignments(c.StringSlice(Property.Name))
	if err != nil {
		return nil, err
	}
	chain = append(chain, assignments)

	if path := c.String(PropertiesFile.Name); len(path) > 0 {
		fileProps, err := properties.ReadFile(path)
		if err != nil {
			return nil, err
		}
		chain = append(chain, fileProps)
	}

	return append(chain, properties.Environ()), nil
}
