package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// snapshotDocument is the on-disk shape of a manifest snapshot. JSON and
// YAML encodings are both accepted. YAML versions that read as a float,
// such as 1.10, must be quoted; bare integers like 2 mean 2.0.0.
type snapshotDocument struct {
	Binaries []snapshotBinary `json:"binaries,omitempty"`
	// URLs maps a plugin URL to "owner/name@version".
	URLs map[string]string `json:"urls,omitempty"`
	// Globals maps a command name to "path" or "owner/name@version".
	Globals map[string]string `json:"globals,omitempty"`
}

type snapshotBinary struct {
	Owner    string          `json:"owner"`
	Name     string          `json:"name"`
	Version  version.Version `json:"version"`
	Commands []Command       `json:"commands,omitempty"`
}

// Load reads a manifest snapshot from path. A missing file is an empty
// manifest: nothing has been installed yet.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return m, nil
}

// Decode builds a manifest from a JSON or YAML snapshot document. Unknown
// fields are rejected.
func Decode(data []byte) (*Manifest, error) {
	var doc snapshotDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, err
	}

	binaries := make([]BinaryManifestItem, 0, len(doc.Binaries))
	for _, b := range doc.Binaries {
		binaries = append(binaries, BinaryManifestItem{
			Name:     BinaryName{Owner: b.Owner, Name: b.Name},
			Version:  b.Version,
			Commands: b.Commands,
		})
	}

	urls := make(map[string]BinaryIdentifier, len(doc.URLs))
	for url, text := range doc.URLs {
		id, err := ParseBinaryIdentifier(text)
		if err != nil {
			return nil, fmt.Errorf("urls[%s]: %w", url, err)
		}
		urls[url] = id
	}

	globals := make(map[CommandName]GlobalBinaryLocation, len(doc.Globals))
	for command, text := range doc.Globals {
		loc, err := ParseGlobalBinaryLocation(text)
		if err != nil {
			return nil, fmt.Errorf("globals[%s]: %w", command, err)
		}
		globals[CommandName(command)] = loc
	}

	return New(binaries, urls, globals)
}
