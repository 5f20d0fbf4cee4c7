package submission

import (
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"
	"gopkg.in/yaml.v2"
)

// registryPackage is the package the changeset bumps
const registryPackage = "@hyperlane-xyz/registry"

// IDGenerator creates changeset file IDs
type IDGenerator interface {
	NewID() string
}

// PetnameIDGenerator creates IDs like brave-silver-otter
type PetnameIDGenerator struct{}

// NewID implements IDGenerator
func (PetnameIDGenerator) NewID() string {
	return petname.Generate(3, "-")
}

// ChangesetPath is where the changeset with id is committed
func ChangesetPath(id string) string {
	return fmt.Sprintf(".changeset/%s.md", id)
}

// ChangesetContent renders a minor version changeset for a new warp route
func ChangesetContent(warpRouteID string) ([]byte, error) {
	frontMatter, err := yaml.Marshal(yaml.MapSlice{
		{Key: registryPackage, Value: "minor"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal changeset front matter: %s", err.Error())
	}

	return []byte(fmt.Sprintf("---\n%s---\n\nAdd %s warp route deploy artifacts.\n",
		frontMatter, warpRouteID)), nil
}
