package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/scienceol/chemcheck/cmd/api"
	"github.com/scienceol/chemcheck/cmd/validate"
	"github.com/scienceol/chemcheck/internal/config"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// @title			chemcheck API
// @version		1.0
// @description	Checks reactant and product names against PubChem.
// @BasePath		/api
func main() {
	rootCtx := utils.SetupSignalContext()
	root := &cobra.Command{
		Use:                "chemcheck",
		SilenceUsage:       true,
		Short:              "chemcheck",
		Long:               "chemcheck - validate reactant and product names against PubChem",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  initGlobalResource,
		RunE:               validate.Run,
		PersistentPostRunE: cleanGlobalResource,
	}
	root.SetContext(rootCtx)
	root.AddCommand(validate.New())
	root.AddCommand(validate.NewResolve())
	root.AddCommand(api.NewWeb())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initGlobalResource(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()

	conf := config.Global()
	if err := v.Unmarshal(conf); err != nil {
		log.Fatal(err)
	}

	logger.Init(&logger.LogConfig{
		Path:     conf.Log.LogPath,
		LogLevel: conf.Log.LogLevel,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  conf.Server.Service,
			Env:      conf.Server.Env,
		},
	})

	return nil
}

func cleanGlobalResource(_ *cobra.Command, _ []string) error {
	logger.Close()
	return nil
}
