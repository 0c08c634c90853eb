package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/ootw"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "ootw"
	app.Usage = "Out of the World frame dump decoder"
	app.Version = "1.0.0"
	app.ArgsUsage = "INPUT"
	app.Description = "Decodes INPUT and writes <stem>-full.png and <stem>-logical.png beside it"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"OOTW_DB"},
			Usage:   "catalogue converted frames in `FILE`",
		},
		&cli.IntFlag{
			Name:  "colors",
			Value: 0,
			Usage: "reduce output to a palette of at most `N` colors, 0 disables",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(ioutil.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		o, err := ootw.New(c.String("db"), c.Int("colors"), logger)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer o.Close()

		if err := o.Convert(c.Args().First()); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
