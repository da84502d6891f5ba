package motd

import (
	_ "embed"

	"github.com/bottlerocket-os/settings-sdk-go/extension"
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// Name is the name of the setting.
const Name = "motd"

// DefaultPerson is who a message migrated forward from v1 is attributed to.
const DefaultPerson = "Sean"

var (
	//go:embed schema/v1.schema.json
	v1Schema []byte

	//go:embed schema/v2.schema.json
	v2Schema []byte
)

// Models returns every version of the setting.
func Models() []model.Model {
	return []model.Model{
		model.Define[V1, V1Partial](VersionV1, V1Model{},
			model.MigratesForwardTo(VersionV2, V1.MigrateForward),
			model.WithSchema[V1](v1Schema)),
		model.Define[V2, V2Partial](VersionV2, V2Model{},
			model.MigratesBackwardTo(VersionV1, V2.MigrateBackward),
			model.WithSchema[V2](v2Schema)),
	}
}

// New returns the motd settings extension.
func New() (*extension.SettingsExtension, error) {
	return extension.New(Name, Models()...)
}
