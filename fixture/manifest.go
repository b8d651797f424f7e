package fixture

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

const ManifestFile = "manifest.yaml"

// Manifest lists the fixtures of one run with their digests
type Manifest struct {
	Fixtures []Entry `yaml:"fixtures"`
}

type Entry struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Size   int    `yaml:"size"`
	Blake3 string `yaml:"blake3"`
}

// Digest returns the hex blake3-256 digest of data
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (m *Manifest) Add(name string, data []byte) {
	m.Fixtures = append(m.Fixtures, Entry{
		Name:   name,
		File:   FileName(name),
		Size:   len(data),
		Blake3: Digest(data),
	})
}

func (m Manifest) Entry(name string) (Entry, bool) {
	for _, e := range m.Fixtures {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Merge returns m with the entries of update replacing or extending it,
// ordered by order; entries whose name is not in order are dropped
func (m Manifest) Merge(update Manifest, order []string) Manifest {
	byName := make(map[string]Entry, len(m.Fixtures)+len(update.Fixtures))
	for _, e := range m.Fixtures {
		byName[e.Name] = e
	}
	for _, e := range update.Fixtures {
		byName[e.Name] = e
	}
	var merged Manifest
	for _, name := range order {
		if e, ok := byName[name]; ok {
			merged.Fixtures = append(merged.Fixtures, e)
		}
	}
	return merged
}

func (m Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

func ParseManifest(data []byte) (m Manifest, err error) {
	err = yaml.Unmarshal(data, &m)
	return
}
