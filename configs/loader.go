package configs

import (
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads CUE config files lazily. Files are checked against the schema
// on first use, and earlier files take precedence over later ones.
type Loader struct {
	paths []string
	files func() ([]configFile, error)
}

type configFile struct {
	path  string
	value cue.Value
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{
		paths: filePaths,
		files: sync.OnceValues(func() ([]configFile, error) {
			return loadFiles(filePaths, schemaSrc)
		}),
	}
}

func (l Loader) Paths() []string {
	return l.paths
}

// Err reports the first read, compile or schema error of any config file.
func (l Loader) Err() error {
	_, err := l.files()
	return err
}

func loadFiles(filePaths []string, schemaSrc string) ([]configFile, error) {
	// unifying values from different runtimes panics
	ctx := cuecontext.New()

	var schema cue.Value
	if schemaSrc != "" {
		schema = ctx.CompileString("close({" + schemaSrc + "})")
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("compile config schema: %w", err)
		}
	}

	files := make([]configFile, 0, len(filePaths))
	for _, filePath := range filePaths {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", filePath, err)
		}
		value := ctx.CompileBytes(content, cue.Filename(filePath))
		if err := value.Err(); err != nil {
			return nil, fmt.Errorf("compile config %s: %w", filePath, err)
		}
		if schema.Exists() {
			if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
				return nil, fmt.Errorf("validate config %s: %w", filePath, err)
			}
		}
		files = append(files, configFile{
			path:  filePath,
			value: value,
		})
	}
	return files, nil
}

// Lookup returns the value at path from the first file defining it, and that
// file's path.
func (l Loader) Lookup(path string) (cue.Value, string, error) {
	files, err := l.files()
	if err != nil {
		return cue.Value{}, "", err
	}
	cuePath := cue.ParsePath(path)
	for _, file := range files {
		value := file.value.LookupPath(cuePath)
		if value.Exists() {
			return value, file.path, nil
		}
	}
	return cue.Value{}, "", fmt.Errorf("%s: %w", path, ErrValueNotFound)
}

func (l Loader) AssignFirst(path string, target any) error {
	value, file, err := l.Lookup(path)
	if err != nil {
		return err
	}
	if err := value.Decode(target); err != nil {
		return fmt.Errorf("decode %s in %s: %w", path, file, err)
	}
	return nil
}
