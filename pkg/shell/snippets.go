package shell

import (
	"fmt"

	"github.com/arthur-debert/nox/pkg/errors"
)

// GetShellIntegrationSnippet returns the rc-file lines that make every new
// shell pick up installed packages. The manifest is POSIX sh, so fish has
// sh evaluate it and imports the resulting variables.
func GetShellIntegrationSnippet(shell string, manifestFile string) (string, error) {
	switch shell {
	case "", "sh", "bash", "zsh", "ksh", "dash":
		return fmt.Sprintf(`[ -f "%s" ] && . "%s"`, manifestFile, manifestFile), nil
	case "fish":
		return fmt.Sprintf(`if test -f "%s"
    for line in (sh -c '. "%s"; env' | string match -r '^(%s|%s|%s)=.*')
        set -l kv (string split -m 1 = $line)
        set -gx $kv[1] (string split : $kv[2])
    end
end`, manifestFile, manifestFile, PathVar, LibraryVar, IncludeVar), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported shell %q", shell)
	}
}
