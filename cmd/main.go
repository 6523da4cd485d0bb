package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var MAIN *cobra.Command

func main() {
	// A general configuration object (feed with flags, conf files, etc.)
	v := viper.New()

	// CLI Command with flag parsing
	MAIN = &cobra.Command{
		Use:   "gitvers [flags] [spec]",
		Short: "Prints the latest versions of the git repositories",
		Long: `Prints the latest versions of the git repositories

Reads a list of git repo paths from the repos file, fetches each one,
and prints its latest semantic version tag, optionally matched against
a semantic version spec (e.g. '<2.0.0').`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			var spec string
			if len(args) > 0 {
				spec = args[0]
			}
			CMDVersions(v, spec)
		},
	}

	ReposFileFlag(MAIN, v)
	NoFetchFlag(MAIN, v)
	GoGitFlag(MAIN, v)
	PrvKFilePathFlag(MAIN, v)
	PrvKPasswordFlag(MAIN, v)

	// showing help is not a successful report run
	help := MAIN.HelpFunc()
	MAIN.SetHelpFunc(func(c *cobra.Command, args []string) {
		help(c, args)
		os.Exit(1)
	})

	if err := MAIN.Execute(); err != nil {
		log.Fatal(err)
	}
}
