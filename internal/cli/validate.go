package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/carousel/internal/validator"
	"github.com/aretw0/carousel/pkg/config"
	"github.com/aretw0/carousel/pkg/transition"
)

// RunValidate reports every issue of the show file at path. It returns an
// error when at least one issue is an error; warnings alone pass.
func RunValidate(w io.Writer, path string) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}

	issues := validator.ValidateShow(f, transition.Default())
	for _, i := range issues {
		fmt.Fprintln(w, i.String())
	}
	if err := validator.Errors(issues); err != nil {
		return err
	}
	fmt.Fprintf(w, "Show %q is valid! ✅ (%d slots)\n", f.Name, len(f.URLs))
	return nil
}
