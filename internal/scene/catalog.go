package scene

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Scenes []Descriptor `yaml:"scenes"`
}

// LoadCatalog reads a yaml scene list from path.
func LoadCatalog(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	descs, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return descs, nil
}

func DecodeCatalog(r io.Reader) ([]Descriptor, error) {
	var cf catalogFile
	if err := yaml.NewDecoder(r).Decode(&cf); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for i := range cf.Scenes {
		for j := range cf.Scenes[i].Params {
			p := &cf.Scenes[i].Params[j]
			if n, ok := NumberDefault(p.Default); ok {
				p.Default = n
			}
		}
	}
	return cf.Scenes, nil
}

func EncodeCatalog(w io.Writer, descs []Descriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Scenes: descs}); err != nil {
		return err
	}
	return enc.Close()
}

func SaveCatalog(path string, descs []Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCatalog(f, descs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
