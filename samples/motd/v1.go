package motd

import (
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// VersionV1 identifies the first version of the setting.
const VersionV1 = "v1"

// V1 is the first version of the setting.
type V1 struct {
	Motd string `json:"motd"`
}

// V1Partial is a partially generated V1.
type V1Partial struct {
	Motd *string `json:"motd,omitempty"`
}

// V1Model implements model.SettingsModel for V1.
type V1Model struct{}

func (V1Model) Set(_ *V1, target V1) (V1, error) {
	return target, nil
}

func (V1Model) Generate(_ *V1Partial, _ model.Value) (model.GenerateResult[V1Partial, V1], error) {
	return model.Complete[V1Partial](&V1{}), nil
}

func (V1Model) Validate(V1, model.Value) (bool, error) {
	return true, nil
}

// MigrateForward converts v into V2, attributing it to DefaultPerson.
func (v V1) MigrateForward() (V2, error) {
	return V2{Motd: v.Motd, Person: DefaultPerson}, nil
}
