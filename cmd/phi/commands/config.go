package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/phi/am"
	"github.com/teranos/phi/errors"
)

// LoadConfig honours the global --config flag, falling back to the cascade.
func LoadConfig(cmd *cobra.Command) (*am.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := am.LoadFromFile(path)
		if err != nil {
			return nil, errors.WithHint(err, "check the path passed to --config")
		}
		return cfg, nil
	}
	return am.Load()
}
