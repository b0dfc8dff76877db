// Command quasar-example is a minimal embedding script: it configures a
// superflat dimension and starts a Server. A full embedding script is
// deliberately out of scope here; this exists only to prove the packages
// wire together. Flag/config wiring follows orbas1-Synnergy's cobra+viper
// pairing from the retrieved pack.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Penguin-Spy/quasar/chunkprovider"
	"github.com/Penguin-Spy/quasar/conn"
	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/logging"
	"github.com/Penguin-Spy/quasar/proto"
	"github.com/Penguin-Spy/quasar/registry"
	"github.com/Penguin-Spy/quasar/server"
)

const plainsBiomeID int32 = 0 // first (and only) entry loaded below

func main() {
	root := &cobra.Command{
		Use:   "quasar-example",
		Short: "run a minimal quasar-embedding superflat server",
		RunE:  run,
	}

	root.Flags().String("address", ":25565", "listen address")
	root.Flags().Bool("online-mode", true, "verify logins against the Mojang session server")
	root.Flags().String("motd", "A Quasar Server", "status response description")
	root.Flags().Int("view-distance", 8, "chunk streaming radius")
	_ = viper.BindPFlags(root.Flags())
	viper.SetEnvPrefix("quasar")
	viper.AutomaticEnv()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logging.New(logging.LevelInfo)

	reg := registry.New()
	reg.LoadBlockStates([]registry.BlockStateDef{
		{Identifier: "minecraft:air", Default: true},
		{Identifier: "minecraft:bedrock", Default: true},
		{Identifier: "minecraft:dirt", Default: true},
		{Identifier: "minecraft:grass_block", Properties: map[string]string{"snowy": "false"}, Default: true},
	})
	reg.LoadDataPackCategory("worldgen/biome", []string{"minecraft:plains"})

	airState, _ := reg.BlockStateDefault("minecraft:air")

	provider, err := chunkprovider.NewSuperflat(reg, []chunkprovider.Layer{
		{BlockState: "minecraft:bedrock", Height: 1},
		{BlockState: "minecraft:dirt", Height: 2},
		{BlockState: "minecraft:grass_block[snowy=false]", Height: 1},
	}, 24, -4, airState, plainsBiomeID)
	if err != nil {
		return fmt.Errorf("building superflat generator: %w", err)
	}

	dim := dimension.New("minecraft:overworld", "minecraft:overworld", reg, provider, 24, -4, airState, plainsBiomeID, log)
	dim.SetSpawnPoint(proto.Vector3{X: 0.5, Y: 4, Z: 0.5})
	dim.SetViewDistance(viper.GetInt("view-distance"))

	var s *server.Server
	s = server.New(server.Config{
		Address:    viper.GetString("address"),
		OnlineMode: viper.GetBool("online-mode"),
		Registry:   reg,
		GetStatus: func() conn.StatusResponse {
			return conn.StatusResponse{
				VersionName: "1.21.7",
				ProtocolID:  772,
				Max:         20,
				Online:      s.PlayerCount(),
				Description: viper.GetString("motd"),
			}
		},
	}, log)
	s.AddDimension(dim)

	log.Info().Str("address", viper.GetString("address")).Msg("starting quasar example server")
	return s.Listen()
}
