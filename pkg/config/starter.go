package config

import (
	"os"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/kublaj/drizzle-builder/pkg/errors"
)

const starterHeader = `# drizzle configuration
# Uncomment a value to override the built-in default.

`

// StarterContent renders a commented-out starter config from the defaults
func StarterContent() (string, error) {
	raw, err := gotoml.Marshal(Defaults())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot marshal defaults")
	}

	var b strings.Builder
	b.WriteString(starterHeader)
	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("# " + line + "\n")
	}
	return b.String(), nil
}

// WriteStarter writes a starter config file, refusing to overwrite one
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrInvalidInput, "config file already exists at %s", path)
	}
	content, err := StarterContent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "cannot write %s", path)
	}
	return nil
}
