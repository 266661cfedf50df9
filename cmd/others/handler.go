package others

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projecteru2/corral/version"
)

// Handler implements Actions. Version and license are static text and need
// no configuration.
type Handler struct{}

func (h Handler) Version(_ *cobra.Command, _ []string) error {
	fmt.Print(version.String())
	return nil
}

func (h Handler) License(_ *cobra.Command, _ []string) error {
	fmt.Print(version.License)
	return nil
}
