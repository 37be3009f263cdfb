package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvFile is the name of the dotenv file read next to the config file.
const DotEnvFile = ".env"

// DotEnvLoader loads KEYTAB_* assignments from a dotenv file. The variables
// are interpreted exactly like the process environment but are not exported
// to it.
type DotEnvLoader struct {
	path string
	env  *EnvLoader
}

// NewDotEnvLoader creates a loader for the dotenv file at path.
func NewDotEnvLoader(path string, env *EnvLoader) *DotEnvLoader {
	return &DotEnvLoader{path: path, env: env}
}

// Load reads the dotenv file. A missing file yields nil, nil.
func (l *DotEnvLoader) Load() (map[string]any, error) {
	vars, err := godotenv.Read(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dotenv file %s: %w", l.path, err)
	}
	return l.env.LoadVars(vars)
}

// LoadFromReader reads dotenv assignments from a reader.
func (l *DotEnvLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	vars, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing dotenv: %w", err)
	}
	return l.env.LoadVars(vars)
}
