package main

import (
	"github.com/argus-labs/gridwars/pkg/game"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a game snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(snapshotSchema(), "", "  ")
			if err != nil {
				return eris.Wrap(err, "failed to encode schema")
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}

func snapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(new(game.Snapshot))
	schema.Title = "Gridwars snapshot"
	schema.Description = "State of a game as printed by gridwars simulate --json"
	return schema
}
