package motd

import (
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// VersionV2 identifies the second version of the setting.
const VersionV2 = "v2"

// V2 is the second version of the setting.
type V2 struct {
	Motd   string `json:"motd"`
	Person string `json:"person"`
}

// V2Partial is a partially generated V2.
type V2Partial struct {
	Motd   *string `json:"motd,omitempty"`
	Person *string `json:"person,omitempty"`
}

// V2Model implements model.SettingsModel for V2.
type V2Model struct{}

func (V2Model) Set(_ *V2, target V2) (V2, error) {
	return target, nil
}

func (V2Model) Generate(_ *V2Partial, _ model.Value) (model.GenerateResult[V2Partial, V2], error) {
	return model.Complete[V2Partial](&V2{}), nil
}

func (V2Model) Validate(V2, model.Value) (bool, error) {
	return true, nil
}

// MigrateBackward converts v into V1. The person is dropped.
func (v V2) MigrateBackward() (V1, error) {
	return V1{Motd: v.Motd}, nil
}
