package cli

import (
	"github.com/spf13/cobra"

	"github.com/bottlerocket-os/settings-sdk-go/internal/branding"
)

func newProto1Cmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.Protocol(),
		Short: "Settings extension protocol 1",
		Long: `Settings extension protocol 1.

JSON flags accept "-" to read their value from stdin.`,
	}
	cmd.AddCommand(newSetCmd(a))
	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var (
		version string
		value   jsonValue
		current jsonValue
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Modify values owned by this setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveStdin(cmd.InOrStdin(), map[string]*jsonValue{"value": &value, "current-value": &current}); err != nil {
				return err
			}
			result, err := a.ext.Set(version, value.value, current.value)
			if err != nil {
				return err
			}
			return a.printResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&version, "setting-version", "", "The version of the setting which should be used")
	cmd.Flags().Var(&value, "value", "The requested value to be set for the incoming setting")
	cmd.Flags().Var(&current, "current-value", "The current value of this settings tree")
	_ = cmd.MarkFlagRequired("setting-version")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		version  string
		partial  jsonValue
		required jsonValue
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate default values for this setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveStdin(cmd.InOrStdin(), map[string]*jsonValue{"existing-partial": &partial, "required-settings": &required}); err != nil {
				return err
			}
			result, err := a.ext.Generate(version, partial.value, required.value)
			if err != nil {
				return err
			}
			return a.printResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&version, "setting-version", "", "The version of the setting which should be used")
	cmd.Flags().Var(&partial, "existing-partial", "A json value containing any partially generated data for this setting")
	cmd.Flags().Var(&required, "required-settings", "A json value containing any requested settings partials needed to generate this one")
	_ = cmd.MarkFlagRequired("setting-version")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var (
		version  string
		value    jsonValue
		required jsonValue
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate values created by external settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveStdin(cmd.InOrStdin(), map[string]*jsonValue{"value": &value, "required-settings": &required}); err != nil {
				return err
			}
			ok, err := a.ext.Validate(version, value.value, required.value)
			if err != nil {
				return err
			}
			return a.printResult(cmd, ok)
		},
	}

	cmd.Flags().StringVar(&version, "setting-version", "", "The version of the setting which should be used")
	cmd.Flags().Var(&value, "value", "The value to validate")
	cmd.Flags().Var(&required, "required-settings", "A json value containing any settings needed to validate this one")
	_ = cmd.MarkFlagRequired("setting-version")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	var (
		value  jsonValue
		from   string
		target string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate this setting from one given version to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveStdin(cmd.InOrStdin(), map[string]*jsonValue{"value": &value}); err != nil {
				return err
			}
			result, err := a.ext.Migrate(value.value, from, target)
			if err != nil {
				return err
			}
			return a.printResult(cmd, result)
		},
	}

	cmd.Flags().Var(&value, "value", "The value to migrate")
	cmd.Flags().StringVar(&from, "from-version", "", "The version the value is currently in")
	cmd.Flags().StringVar(&target, "target-version", "", "The version to migrate the value to")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("from-version")
	_ = cmd.MarkFlagRequired("target-version")
	return cmd
}
