package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputOptions selects structured output instead of the pretty printers.
type OutputOptions struct {
	JSON bool
	YAML bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().BoolVar(&po.YAML, "yaml", false,
		"Output as YAML.")
}

// Format is "json", "yaml" or "" for pretty output.
func (o *OutputOptions) Format() string {
	switch {
	case o == nil:
		return ""
	case o.JSON:
		return "json"
	case o.YAML:
		return "yaml"
	}
	return ""
}

// HandleError prints err as a structured document when a structured format
// was requested, and otherwise hands it back to cobra.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || o.Format() == "" {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	var b []byte
	var merr error
	if o.JSON {
		b, merr = json.Marshal(out)
	} else {
		b, merr = yaml.Marshal(out)
	}
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
